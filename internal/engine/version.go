package engine

import "fmt"

// Build metadata, overridden with -ldflags "-X ...engine.EngineVersion=v1.2.0"
var (
	EngineVersion = "dev"
	GitCommit     = "unknown"
	BuildTime     = "unknown"
)

// VersionInfo identifies the build that produced a run
type VersionInfo struct {
	EngineVersion string `json:"engine_version"`
	GitCommit     string `json:"git_commit"`
	BuildTime     string `json:"build_time"`
}

// CurrentVersion snapshots the build metadata
func CurrentVersion() VersionInfo {
	return VersionInfo{
		EngineVersion: EngineVersion,
		GitCommit:     GitCommit,
		BuildTime:     BuildTime,
	}
}

// String renders one "label: value" line per field
func (v VersionInfo) String() string {
	return fmt.Sprintf("engine: %s\ncommit: %s\nbuilt:  %s", v.EngineVersion, v.GitCommit, v.BuildTime)
}
