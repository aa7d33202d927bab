// wedosctl manages WEDOS-hosted DNS zones through the WAPI JSON interface.
package main

import "gitlab.bluewillows.net/root/wedosapi/internal/cli"

// Version is set via ldflags during build.
// Example: -ldflags="-X main.Version=v1.2.3"
var Version = "dev"

func main() {
	cli.Execute(Version)
}
