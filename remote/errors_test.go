package remote

import (
	"strings"
	"testing"

	"emperror.dev/errors"
)

func TestErrorTypeChecks(t *testing.T) {
	conn := &ConnectionError{Target: "alice@host1", Err: errors.New("auth failed")}
	cmd := &CommandError{Target: "alice@host1", Command: "ml avail", Err: errors.New("timeout")}

	if !IsConnectionError(conn) || IsCommandError(conn) {
		t.Error("ConnectionError misclassified")
	}
	if !IsCommandError(cmd) || IsConnectionError(cmd) {
		t.Error("CommandError misclassified")
	}
	if IsConnectionError(errors.New("plain")) || IsCommandError(nil) {
		t.Error("unrelated errors misclassified")
	}
}

func TestErrorChecksSeeThroughWrapping(t *testing.T) {
	cause := &CommandError{Target: "alice@host1", Command: "stat", Err: errors.New("session broke")}
	wrapped := errors.Wrap(cause, "modules: probing build time")

	if !IsCommandError(wrapped) {
		t.Error("wrapping hid the command error")
	}
	if IsConnectionError(wrapped) {
		t.Error("wrapped command error misread as connection error")
	}
}

func TestErrorMessagesNameTheTarget(t *testing.T) {
	conn := &ConnectionError{Target: "alice@host1", Err: errors.New("no route to host")}
	if !strings.Contains(conn.Error(), "alice@host1") || !strings.Contains(conn.Error(), "no route to host") {
		t.Errorf("unhelpful connection error: %s", conn.Error())
	}

	cmd := &CommandError{Target: "bob@host2", Command: "ml avail", Err: errors.New("context deadline exceeded")}
	if !strings.Contains(cmd.Error(), "bob@host2") {
		t.Errorf("command error does not name the host: %s", cmd.Error())
	}
}
