package version

import (
	"fmt"
	"runtime"
)

// Version and GitCommit are overridden at build time:
//
//	go build -ldflags "-X github.com/c9s/mtcli/pkg/version.Version=v1.0.0 -X github.com/c9s/mtcli/pkg/version.GitCommit=$(git rev-parse --short HEAD)" ./cmd/mtcli
var (
	Version   = "v0.1.0-dev"
	GitCommit = ""
)

// String returns the version line printed by `mtcli version`
func String() string {
	s := Version
	if GitCommit != "" {
		s += "-" + GitCommit
	}
	return fmt.Sprintf("mtcli %s %s/%s %s", s, runtime.GOOS, runtime.GOARCH, runtime.Version())
}
