package modules

import (
	"fmt"

	"emperror.dev/errors"
)

// statUnknown is echoed by the probe command when the module's definition
// file cannot be resolved or statted on the remote side.
const statUnknown = "Unknown"

// Dialect bundles the command strings for one module-system CLI flavor. The
// flavors share the whole listing pipeline and differ only in how the catalog
// is printed and which stat flag the host's coreutils accept.
type Dialect struct {
	Name string
	// ListCommand prints one name/version per line, already filtered of
	// section headers.
	ListCommand string
	// StatFormat is the stat(1) flag selecting the "last changed" timestamp.
	StatFormat string
}

var (
	// DialectTerse targets hosts with Lmod's "ml" front end.
	DialectTerse = Dialect{
		Name:        "terse",
		ListCommand: `ml --terse avail 2>&1 | grep -E '/[^/]+$' | grep -v ':$'`,
		StatFormat:  `-c '%z'`,
	}

	// DialectVerbose targets hosts that only expose the classic "module"
	// command and a coreutils stat without the -c shorthand.
	DialectVerbose = Dialect{
		Name:        "verbose",
		ListCommand: `module avail -t 2>&1 | grep -E '/[^/]+$' | grep -v ':$'`,
		StatFormat:  `--format='%z'`,
	}
)

// DialectByName resolves a configured dialect name to its command set.
func DialectByName(name string) (Dialect, error) {
	switch name {
	case DialectTerse.Name:
		return DialectTerse, nil
	case DialectVerbose.Name:
		return DialectVerbose, nil
	}
	return Dialect{}, errors.Errorf("modules: unknown dialect %q", name)
}

// statCommand builds the build-time probe for one module: resolve the backing
// .lua definition file via "module show", stat it, and fall back to the
// Unknown marker when either step fails.
func (d Dialect) statCommand(fullName string) string {
	return fmt.Sprintf(
		`stat %s $(module show %s 2>&1 | grep -o '/.*\.lua' | head -1) 2>/dev/null || echo '%s'`,
		d.StatFormat, fullName, statUnknown,
	)
}

// showCommand resolves only the backing definition file path. Used by the
// sftp probe mode, which stats the file itself.
func (d Dialect) showCommand(fullName string) string {
	return fmt.Sprintf(`module show %s 2>&1 | grep -o '/.*\.lua' | head -1`, fullName)
}
