// Package buildinfo holds the version stamped in with
// -ldflags "-X ttypanel/internal/buildinfo.Version=...".
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Short is the identifier shown on the panel's about screen. It must fit
// one row of the grid.
func Short() string {
	switch {
	case Version != "" && Version != "dev":
		return truncate(Version)
	case Commit != "" && Commit != "unknown":
		return truncate(Commit)
	}
	return "dev"
}

// Long is the CLI --version string.
func Long() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, Date)
}

const maxShort = 12

func truncate(s string) string {
	if len(s) > maxShort {
		return s[:maxShort]
	}
	return s
}
