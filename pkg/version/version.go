package version

// These are set at build time with -ldflags "-X".
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)
