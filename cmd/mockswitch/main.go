// mockswitch CLI - serves mock handlers that can be switched on and off at runtime
package main

import "github.com/getmockd/mockswitch/pkg/cli"

// Build-time variables are set via ldflags on the cli package:
//
//	-X github.com/getmockd/mockswitch/pkg/cli.Version=...
func main() {
	cli.Execute()
}
