// SPDX-License-Identifier: MPL-2.0

// Command fxodeps reports scalar data dependencies of compiled shader
// containers.
package main

import "github.com/fxodeps/fxodeps/cmd/fxodeps"

func main() {
	cmd.Execute()
}
