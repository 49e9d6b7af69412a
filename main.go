package main

import (
	"os"
	_ "time/tzdata" // named zones in timestamps and config work without system zoneinfo

	"github.com/harrisonrobin/ticked/cmd"
)

// version will be set at build time
var version = "dev"

func main() {
	cmd.SetVersion(version)
	os.Exit(cmd.Execute())
}
