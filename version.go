package pledge

import "fmt"

const (
	Maj = 0
	Min = 1
	Fix = 0
)

// Suffix is set for untagged builds, eg. -dev
const Suffix = "-dev"

var version = fmt.Sprintf("v%d.%d.%d%s", Maj, Min, Fix, Suffix)

// GitCommit is set with -ldflags at build time.
var GitCommit = ""

// Version returns the version and, when known, the commit.
func Version() string {
	if GitCommit != "" {
		return version + " " + GitCommit
	}
	return version
}
