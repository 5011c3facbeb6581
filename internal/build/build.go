// Package build carries version information injected at link time.
package build

import "time"

var (
	commit  = ""
	date    = ""
	version = "dev"
)

var Current Build

func init() {
	d, _ := time.Parse(time.RFC3339, date)

	Current = Build{
		Commit:  commit,
		Version: version,
		Date:    d,
	}
}

type Build struct {
	Commit  string    `json:"commit,omitempty"`
	Version string    `json:"version"`
	Date    time.Time `json:"date,omitempty"`
}
