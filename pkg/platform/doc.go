// SPDX-License-Identifier: MPL-2.0

// Package platform provides cross-platform compatibility utilities.
//
// It names the host platform the way project descriptors do (for example
// "x86_64-linux" or "aarch64-darwin") and hides the per-OS differences in
// virtual environment layout and default shells.
package platform
