package remote

import (
	"time"

	"emperror.dev/errors"
	"github.com/pkg/sftp"
)

// Stater resolves file modification times over the client's SFTP subsystem.
// It satisfies the lister's FileStater and exists so build times can come
// from a real stat instead of scraping remote stat(1) output.
type Stater struct {
	target string
	client *sftp.Client
}

// Stater opens the SFTP subsystem on the underlying connection, once, and
// returns a prober bound to it.
func (c *Client) Stater() (*Stater, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sftp == nil {
		sc, err := sftp.NewClient(c.conn)
		if err != nil {
			return nil, &ConnectionError{
				Target: c.target.String(),
				Err:    errors.Wrap(err, "unable to start SFTP subsystem"),
			}
		}
		c.sftp = sc
	}
	return &Stater{target: c.target.String(), client: c.sftp}, nil
}

// ModTime stats the remote path and returns its modification time.
func (s *Stater) ModTime(path string) (time.Time, error) {
	fi, err := s.client.Stat(path)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "remote: stat %s on %s", path, s.target)
	}
	return fi.ModTime(), nil
}
