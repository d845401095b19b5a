package buildinfo

import "testing"

func TestBanner(t *testing.T) {
	defer func(v, c, d string) { Version, Commit, Date = v, c, d }(Version, Commit, Date)

	tcs := []struct {
		version, commit, date string
		want                  string
	}{
		{"dev", "unknown", "unknown", "unios dev"},
		{"dev", "abc123", "unknown", "unios abc123"},
		{"v0.3.0", "abc123", "2026-10-01", "unios v0.3.0 (2026-10-01)"},
		{"", "", "", "unios dev"},
	}
	for _, tc := range tcs {
		Version, Commit, Date = tc.version, tc.commit, tc.date
		if got := Banner(); got != tc.want {
			t.Fatalf("Banner()=%q, want %q", got, tc.want)
		}
	}
}
