// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/PhilLello/doxyreport/cmd/doxyreport"

func main() {
	cmd.Execute()
}
