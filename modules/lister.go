package modules

import (
	"context"
	"strings"
	"time"

	"emperror.dev/errors"
	"github.com/apex/log"
)

// CommandRunner executes a single shell command on a remote host and returns
// its standard output and standard error separately. It is the only thing the
// lister knows about the transport.
type CommandRunner interface {
	Run(ctx context.Context, command string) (stdout string, stderr string, err error)
}

// FileStater reports the modification time of a remote file. It backs the
// sftp probe mode; the default probe stats through the remote shell instead.
type FileStater interface {
	ModTime(path string) (time.Time, error)
}

// Lister scrapes one host's module catalog into records. It issues one
// listing command plus one build-time probe per module, so a catalog of N
// modules costs 1+N round trips.
type Lister struct {
	Runner  CommandRunner
	Dialect Dialect

	// Stater, when set, switches the build-time probe from a remote shell
	// stat to an SFTP stat of the resolved definition file.
	Stater FileStater

	// Host labels log entries; it has no effect on behavior.
	Host string
}

// List produces the host's records in catalog order. A per-module probe that
// fails or returns garbage degrades that record to the sentinel build time;
// an error actually running a remote command aborts the whole listing.
func (l *Lister) List(ctx context.Context) ([]Record, error) {
	stdout, _, err := l.Runner.Run(ctx, l.Dialect.ListCommand)
	if err != nil {
		return nil, errors.Wrapf(err, "modules: listing catalog on %s", l.Host)
	}

	var records []Record
	for _, line := range strings.Split(stdout, "\n") {
		fullName := strings.TrimSpace(line)
		// Section headers are module search paths ending in a colon. The
		// listing command filters them remotely already, but the rule is
		// part of the catalog format, not of the transport.
		if fullName == "" || strings.HasSuffix(fullName, ":") {
			continue
		}
		t, err := l.buildTime(ctx, fullName)
		if err != nil {
			return nil, err
		}
		records = append(records, NewRecord(fullName, t))
	}

	log.WithFields(log.Fields{
		"host":    l.Host,
		"modules": len(records),
	}).Debug("module catalog listed")

	return records, nil
}

func (l *Lister) buildTime(ctx context.Context, fullName string) (time.Time, error) {
	if l.Stater == nil {
		out, _, err := l.Runner.Run(ctx, l.Dialect.statCommand(fullName))
		if err != nil {
			return time.Time{}, errors.Wrapf(err, "modules: probing build time of %s on %s", fullName, l.Host)
		}
		return ParseBuildTime(out), nil
	}

	out, _, err := l.Runner.Run(ctx, l.Dialect.showCommand(fullName))
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "modules: resolving definition file of %s on %s", fullName, l.Host)
	}
	path := strings.TrimSpace(out)
	if path == "" {
		return SentinelTime, nil
	}
	mt, err := l.Stater.ModTime(path)
	if err != nil {
		log.WithFields(log.Fields{
			"host":   l.Host,
			"module": fullName,
		}).WithError(err).Debug("sftp stat failed, degrading to sentinel build time")
		return SentinelTime, nil
	}
	// Shell stat output carries second precision; keep both probes aligned.
	return mt.Truncate(time.Second), nil
}
