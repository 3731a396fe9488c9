// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/venvshell/venvshell/cmd/venvshell"

func main() {
	cmd.Execute()
}
