package remote

import (
	"bytes"
	"context"
	"net"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"emperror.dev/errors"
	"github.com/apex/log"
	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
)

// Target is a user@host destination.
type Target struct {
	User string
	Host string
}

// ParseTarget splits a user@host argument. Both halves must be non-empty.
func ParseTarget(s string) (Target, error) {
	user, host, ok := strings.Cut(s, "@")
	if !ok || user == "" || host == "" {
		return Target{}, errors.Errorf("remote: target %q is not in user@host form", s)
	}
	return Target{User: user, Host: host}, nil
}

func (t Target) String() string {
	return t.User + "@" + t.Host
}

// Credentials selects how sessions authenticate. Exactly one of key and
// password is expected to work; nothing is pre-validated, a bad combination
// simply fails the dial.
type Credentials struct {
	KeyPath  string
	Password string
}

func (c Credentials) methods() ([]ssh.AuthMethod, error) {
	if c.KeyPath != "" {
		pem, err := os.ReadFile(c.KeyPath)
		if err != nil {
			return nil, errors.Wrapf(err, "reading private key %s", c.KeyPath)
		}
		signer, err := ssh.ParsePrivateKey(pem)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing private key %s", c.KeyPath)
		}
		return []ssh.AuthMethod{ssh.PublicKeys(signer)}, nil
	}
	return []ssh.AuthMethod{ssh.Password(c.Password)}, nil
}

// Options tune the channel. Zero values fall back to port 22 and unbounded
// commands.
type Options struct {
	Port           int
	ConnectTimeout time.Duration
	CommandTimeout time.Duration
}

// Client is a command channel to one host. Each host gets its own client; a
// client is owned exclusively by the listing routine for that host and is
// never shared or pooled.
type Client struct {
	target Target
	conn   *ssh.Client
	opts   Options

	mu   sync.Mutex
	sftp *sftp.Client
}

// Connect dials the host and authenticates with the given credentials.
func Connect(target Target, creds Credentials, opts Options) (*Client, error) {
	methods, err := creds.methods()
	if err != nil {
		return nil, &ConnectionError{Target: target.String(), Err: err}
	}

	config := &ssh.ClientConfig{
		User:            target.User,
		Auth:            methods,
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         opts.ConnectTimeout,
	}

	port := opts.Port
	if port == 0 {
		port = 22
	}
	addr := net.JoinHostPort(target.Host, strconv.Itoa(port))

	conn, err := ssh.Dial("tcp", addr, config)
	if err != nil {
		return nil, &ConnectionError{Target: target.String(), Err: err}
	}
	log.WithField("target", target.String()).Info("connected")

	return &Client{target: target, conn: conn, opts: opts}, nil
}

// Run executes one command in a fresh session and returns its output streams.
// The context plus the configured command timeout bound the round trip;
// exceeding either is a CommandError. A nonzero exit status is not an error:
// the catalog commands are scrape pipelines that embed their own fallbacks
// and exit nonzero on empty output.
func (c *Client) Run(ctx context.Context, command string) (string, string, error) {
	if c.opts.CommandTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.opts.CommandTimeout)
		defer cancel()
	}

	session, err := c.conn.NewSession()
	if err != nil {
		return "", "", &CommandError{Target: c.target.String(), Command: command, Err: err}
	}
	defer session.Close()

	var stdout, stderr bytes.Buffer
	session.Stdout = &stdout
	session.Stderr = &stderr

	done := make(chan error, 1)
	go func() {
		done <- session.Run(command)
	}()

	select {
	case err := <-done:
		if err != nil {
			var exit *ssh.ExitError
			if errors.As(err, &exit) {
				return stdout.String(), stderr.String(), nil
			}
			return "", "", &CommandError{Target: c.target.String(), Command: command, Err: err}
		}
		return stdout.String(), stderr.String(), nil
	case <-ctx.Done():
		session.Close()
		return "", "", &CommandError{Target: c.target.String(), Command: command, Err: ctx.Err()}
	}
}

// Close tears down the SFTP subsystem, if one was opened, and the underlying
// connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sftp != nil {
		c.sftp.Close()
		c.sftp = nil
	}
	return c.conn.Close()
}
