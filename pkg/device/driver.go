package device

import (
	"context"
	"fmt"

	"github.com/netweave/netweave/pkg/inventory"
)

// Driver abstracts a management session to a single device. The NETCONF
// implementation maps these onto the standard RFC 6241 operations; the CLI
// implementation approximates them over an SSH shell (see cli.go for the
// exact mapping).
type Driver interface {
	// EditConfig submits a configuration payload to the target datastore
	// (candidate|running). The change is all-or-nothing: atomicity is a
	// protocol-layer guarantee this interface trusts but does not implement.
	EditConfig(target, config string) (*Response, error)
	// GetConfig retrieves configuration from the source datastore,
	// optionally narrowed by a subtree filter (or show command for CLI).
	GetConfig(source, filter string) (*Response, error)
	// Get retrieves operational state.
	Get(filter string) (*Response, error)
	// Lock takes an exclusive lock on the target datastore.
	Lock(target string) error
	// Unlock releases the datastore lock.
	Unlock(target string) error
	// Validate asks the device to validate the source datastore.
	Validate(source string) error
	// Commit applies candidate changes to the running config.
	Commit() error
	// Discard drops uncommitted candidate changes.
	Discard() error
	// Close terminates the session.
	Close() error
}

// ConnectFunc opens a session to a device. The pipeline takes one of these
// instead of a concrete driver so tests can substitute a fake.
type ConnectFunc func(ctx context.Context, params ConnParams) (Driver, error)

// Connect opens a session using the transport named in params.
func Connect(ctx context.Context, params ConnParams) (Driver, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	switch params.Transport {
	case inventory.TransportNetconf:
		return dialNetconf(params)
	case inventory.TransportCLI:
		return dialCLI(params)
	default:
		return nil, fmt.Errorf("unknown transport '%s' for device %s", params.Transport, params.Name)
	}
}
