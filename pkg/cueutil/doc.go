// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides shared CUE parsing utilities.
//
// Both the user configuration file and the project descriptor are CUE
// documents checked against an embedded schema. The flow is always:
//
//  1. Compile the embedded schema and look up its root definition
//  2. Compile user data and unify it with the definition
//  3. Validate and decode to a Go value
//
// # Usage
//
//	//go:embed descriptor_schema.cue
//	var schema []byte
//
//	result, err := cueutil.ParseFile[Descriptor](schema, "venvshell.cue", "#Descriptor")
//	if err != nil {
//	    return nil, err // error carries file and field path
//	}
//	return result.Value, nil
package cueutil
