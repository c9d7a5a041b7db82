package modules

import (
	"strings"
	"time"
)

// buildTimeLayout is the timestamp prefix emitted by stat(1); fractional
// seconds and the timezone suffix are stripped before parsing.
const buildTimeLayout = "2006-01-02 15:04:05"

// SentinelTime is substituted for a module's build time whenever the remote
// lookup fails or returns something unparsable.
var SentinelTime = time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)

// Record is one entry in a host's module catalog.
type Record struct {
	// Name is the module's base identifier, e.g. "gcc".
	Name string
	// Version is the segment after the first slash of the full name, or
	// "unknown" when the catalog entry has no separable version.
	Version string
	// FullName is the catalog's canonical name/version identifier and the
	// unique key used for presence comparison.
	FullName string
	// BuildTime is the modification time of the module's backing definition
	// file, or SentinelTime when it could not be determined.
	BuildTime time.Time
}

// NewRecord builds a Record from a catalog line and an already resolved build
// time. The full name splits into name and version on the first slash.
func NewRecord(fullName string, buildTime time.Time) Record {
	name, version, ok := strings.Cut(fullName, "/")
	if !ok {
		name = fullName
		version = "unknown"
	}
	return Record{
		Name:      name,
		Version:   version,
		FullName:  fullName,
		BuildTime: buildTime,
	}
}

// ParseBuildTime interprets the raw output of a build-time probe. The literal
// Unknown marker, an empty string, and any malformed timestamp all degrade to
// SentinelTime; parsing never fails upward.
func ParseBuildTime(raw string) time.Time {
	s := strings.TrimSpace(raw)
	if s == "" || s == statUnknown {
		return SentinelTime
	}
	if len(s) > len(buildTimeLayout) {
		s = s[:len(buildTimeLayout)]
	}
	t, err := time.Parse(buildTimeLayout, s)
	if err != nil {
		return SentinelTime
	}
	return t
}
