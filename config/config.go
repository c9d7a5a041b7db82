package config

import (
	"os"

	"emperror.dev/errors"
	"github.com/creasty/defaults"
	"gopkg.in/yaml.v2"
)

// Probe modes for build-time lookups.
const (
	// ProbeShell stats the module's definition file through the remote
	// shell, scraping the stat(1) output.
	ProbeShell = "shell"
	// ProbeSFTP resolves the definition file remotely but stats it over the
	// SFTP subsystem.
	ProbeSFTP = "sftp"
)

// SSHConfiguration tunes the command channels to both hosts. Timeouts are in
// seconds; a zero command timeout leaves commands unbounded.
type SSHConfiguration struct {
	// The port both hosts listen on for SSH.
	Port int `default:"22" yaml:"port"`
	// How long to wait for the TCP dial plus handshake, per host.
	ConnectTimeout int `default:"15" yaml:"connect_timeout"`
	// How long a single remote command may take before the run is aborted.
	CommandTimeout int `default:"30" yaml:"command_timeout"`
}

// Configuration is the full runtime configuration. Values come from struct
// defaults, then an optional YAML file, then command-line flags, each layer
// overriding the last.
type Configuration struct {
	// Debug enables verbose logging.
	Debug bool `default:"false" yaml:"debug"`

	// Dialect selects the module-system command set: "terse" for hosts with
	// the Lmod "ml" front end, "verbose" for plain "module" hosts.
	Dialect string `default:"terse" yaml:"dialect"`

	// Probe selects how build times are looked up, see the Probe constants.
	Probe string `default:"shell" yaml:"probe"`

	Ssh SSHConfiguration `yaml:"ssh"`
}

// Default returns a configuration with every default value applied.
func Default() (*Configuration, error) {
	c := new(Configuration)
	if err := defaults.Set(c); err != nil {
		return nil, errors.Wrap(err, "config: could not apply default values")
	}
	return c, nil
}

// Load reads the YAML file at path over a defaulted configuration.
func Load(path string) (*Configuration, error) {
	c, err := Default()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "config: reading %s", path)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, errors.Wrapf(err, "config: parsing %s", path)
	}
	return c, nil
}

// Validate rejects values no component can act on. Dialect names are owned by
// the modules package and checked there.
func (c *Configuration) Validate() error {
	switch c.Probe {
	case ProbeShell, ProbeSFTP:
	default:
		return errors.Errorf("config: unknown probe mode %q", c.Probe)
	}
	if c.Ssh.Port <= 0 || c.Ssh.Port > 65535 {
		return errors.Errorf("config: invalid ssh port %d", c.Ssh.Port)
	}
	return nil
}
