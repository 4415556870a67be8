/*
flag Package set up cli flags shared across services

Usage:

	Flags listed in this package are shared across boundaries and service-agnostic
	For service dependent flags please define in their respective package
*/
package flag

import (
	"flag"
)

const (
	APIServer = "api_server"
)

var (
	IsDevelopment = flag.Bool("dev", true, "set to true if the current run is for development. default value is true")
	ServiceName   = flag.String("service", APIServer, "name of the service, used in logs and traces")
	ByPassAuth    = flag.Bool("no_auth", false, "skip token verification, local debugging only")
)

// ParseFlags parses the command line. Call it once from main, never at
// package init: test binaries register their own flags after package init
// runs, and parsing early would reject them.
func ParseFlags() {
	flag.Parse()
}
