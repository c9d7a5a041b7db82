package modules

import (
	"testing"
	"time"
)

func TestNewRecordSplitsOnFirstSlash(t *testing.T) {
	cases := []struct {
		fullName string
		name     string
		version  string
	}{
		{"gcc/11.2", "gcc", "11.2"},
		{"python/3.9", "python", "3.9"},
		{"weirdmodule", "weirdmodule", "unknown"},
		{"fftw/3.3.10/gcc-11.2", "fftw", "3.3.10/gcc-11.2"},
	}

	for _, tc := range cases {
		r := NewRecord(tc.fullName, SentinelTime)
		if r.Name != tc.name {
			t.Errorf("%q: Name = %q, want %q", tc.fullName, r.Name, tc.name)
		}
		if r.Version != tc.version {
			t.Errorf("%q: Version = %q, want %q", tc.fullName, r.Version, tc.version)
		}
		if r.FullName != tc.fullName {
			t.Errorf("%q: FullName = %q", tc.fullName, r.FullName)
		}
	}
}

func TestParseBuildTime(t *testing.T) {
	want := time.Date(2023, 4, 15, 9, 30, 45, 0, time.UTC)

	cases := []struct {
		name string
		raw  string
		want time.Time
	}{
		{"plain", "2023-04-15 09:30:45", want},
		{"trailing newline", "2023-04-15 09:30:45\n", want},
		{"fractional seconds and zone", "2023-04-15 09:30:45.123456789 +0200", want},
		{"zone only", "2023-04-15 09:30:45 +0200", want},
		{"unknown marker", "Unknown", SentinelTime},
		{"empty", "", SentinelTime},
		{"whitespace", "   \n", SentinelTime},
		{"garbage", "not a timestamp at all", SentinelTime},
		{"truncated", "2023-04-15", SentinelTime},
		{"impossible date", "2023-13-40 09:30:45", SentinelTime},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseBuildTime(tc.raw)
			if !got.Equal(tc.want) {
				t.Errorf("ParseBuildTime(%q) = %v, want %v", tc.raw, got, tc.want)
			}
		})
	}
}

func TestSentinelIsEpoch(t *testing.T) {
	if SentinelTime.Unix() != 0 {
		t.Errorf("SentinelTime = %v, want the Unix epoch", SentinelTime)
	}
}
