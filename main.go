// Copyright 2026 The Tocayo Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/jcodagnone/tocayo/cmd"
)

var Version = "development"

func main() {
	cmd.Execute(Version)
}
