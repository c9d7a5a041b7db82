package system

var (
	// Version is set at build time via ldflags.
	Version = "develop"
)
