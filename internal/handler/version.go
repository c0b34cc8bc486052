package handler

import (
	"net/http"
	"runtime"
	"runtime/debug"
	"time"
)

// VersionInfo describes the running build
type VersionInfo struct {
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildTime string `json:"build_time,omitempty"`
	Uptime    string `json:"uptime"`
}

// Build-time variables, set with -ldflags "-X ..."
var (
	Version   = "dev"
	BuildTime = ""
	GitCommit = ""
)

var startedAt = time.Now()

// HandleVersion reports which build is deployed. Commit and build time fall
// back to the VCS stamp the toolchain embeds when ldflags did not set them.
func HandleVersion(configured string) http.HandlerFunc {
	info := VersionInfo{
		Version:   Version,
		GoVersion: runtime.Version(),
		GitCommit: GitCommit,
		BuildTime: BuildTime,
	}
	if info.Version == "dev" && configured != "" {
		info.Version = configured
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			switch {
			case s.Key == "vcs.revision" && info.GitCommit == "":
				info.GitCommit = s.Value
			case s.Key == "vcs.time" && info.BuildTime == "":
				info.BuildTime = s.Value
			}
		}
	}

	return func(w http.ResponseWriter, r *http.Request) {
		out := info
		out.Uptime = time.Since(startedAt).Truncate(time.Second).String()
		respondJSON(w, http.StatusOK, out)
	}
}
