// Package buildconfig exposes version metadata stamped at build time, for
// example:
//
//	go build -ldflags "-X .../internal/buildconfig.version=v0.3.0"
package buildconfig

var (
	version = "dev"
	commit  = "unknown"
)

// Version returns the stamped release version, or "dev" for local builds.
func Version() string {
	return version
}

// Commit returns the stamped git commit hash.
func Commit() string {
	return commit
}

// VersionInfo bundles the build metadata for the metrics endpoint.
func VersionInfo() map[string]string {
	return map[string]string{
		"version": version,
		"commit":  commit,
	}
}
