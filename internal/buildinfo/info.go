// Package buildinfo holds version metadata stamped in at link time:
//
//	go build -ldflags "-X github.com/ynab-import/ynab-import/internal/buildinfo.Version=v1.0.0"
package buildinfo

var (
	// Version is the release tag.
	Version = "dev"
	// Commit is the git revision the binary was built from.
	Commit = "none"
	// Date is the build timestamp.
	Date = "unknown"
)
