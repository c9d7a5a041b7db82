package remote

import (
	"testing"
)

func TestParseTarget(t *testing.T) {
	cases := []struct {
		in   string
		user string
		host string
		ok   bool
	}{
		{"alice@node01.example.com", "alice", "node01.example.com", true},
		{"root@10.0.0.5", "root", "10.0.0.5", true},
		{"node01.example.com", "", "", false},
		{"@node01", "", "", false},
		{"alice@", "", "", false},
		{"", "", "", false},
	}

	for _, tc := range cases {
		target, err := ParseTarget(tc.in)
		if tc.ok && err != nil {
			t.Errorf("ParseTarget(%q) returned error: %v", tc.in, err)
			continue
		}
		if !tc.ok {
			if err == nil {
				t.Errorf("ParseTarget(%q) accepted a malformed target", tc.in)
			}
			continue
		}
		if target.User != tc.user || target.Host != tc.host {
			t.Errorf("ParseTarget(%q) = %s@%s, want %s@%s", tc.in, target.User, target.Host, tc.user, tc.host)
		}
		if target.String() != tc.in {
			t.Errorf("Target.String() = %q, want %q", target.String(), tc.in)
		}
	}
}

func TestCredentialsMethodsPassword(t *testing.T) {
	methods, err := Credentials{Password: "hunter2"}.methods()
	if err != nil {
		t.Fatalf("methods returned error: %v", err)
	}
	if len(methods) != 1 {
		t.Errorf("got %d auth methods, want 1", len(methods))
	}
}

func TestCredentialsMethodsMissingKeyFile(t *testing.T) {
	if _, err := (Credentials{KeyPath: "/does/not/exist"}).methods(); err == nil {
		t.Error("methods accepted an unreadable key path")
	}
}
