// Package buildinfo holds build stamps set with
// -ldflags "-X unios/internal/buildinfo.Version=...".
package buildinfo

var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Short is the stamped version, else the commit, else "dev".
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if Commit != "" && Commit != "unknown" {
		return Commit
	}
	return "dev"
}

// Banner is the console's first line: "unios <short>", followed by the build
// date when one was stamped.
func Banner() string {
	s := "unios " + Short()
	if Date != "" && Date != "unknown" {
		s += " (" + Date + ")"
	}
	return s
}
