package catering

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/tidwall/gjson"
)

// apiVersionConstraint matches the server versions this client speaks.
// The drill-down endpoints were introduced in 1.0; 2.x is expected to
// restructure the category analysis payloads.
const apiVersionConstraint = ">= 1.0.0-0, < 2.0.0"

// ErrIncompatibleServer indicates the server reported a version outside
// the supported range.
var ErrIncompatibleServer = errors.New("incompatible server version")

// ServerInfo is the identity the server reports at its root endpoint.
type ServerInfo struct {
	// App is the server application name.
	App string

	// Version is the reported semantic version.
	Version string

	// Status is the server's self-reported run state.
	Status string
}

// ServerInfo fetches the server identity from the root endpoint.
func (c *Client) ServerInfo(ctx context.Context) (ServerInfo, error) {
	body, err := c.get(ctx, pathRoot, nil)
	if err != nil {
		return ServerInfo{}, err
	}
	info := ServerInfo{
		App:     gjson.Get(body, "app").String(),
		Version: gjson.Get(body, "version").String(),
		Status:  gjson.Get(body, "status").String(),
	}
	if info.Version == "" {
		return ServerInfo{}, fmt.Errorf("server identity at %s has no version field", pathRoot)
	}
	return info, nil
}

// CheckCompat fetches the server identity and verifies its version falls
// in the supported range. It returns the identity either way so callers
// can name the server in their error message.
func (c *Client) CheckCompat(ctx context.Context) (ServerInfo, error) {
	info, err := c.ServerInfo(ctx)
	if err != nil {
		return info, err
	}
	v, err := semver.NewVersion(info.Version)
	if err != nil {
		return info, fmt.Errorf("server version %q is not valid semver: %w", info.Version, err)
	}
	constraint, err := semver.NewConstraint(apiVersionConstraint)
	if err != nil {
		return info, fmt.Errorf("parse version constraint: %w", err)
	}
	if !constraint.Check(v) {
		return info, fmt.Errorf("%w: server %s reports %s, client requires %s",
			ErrIncompatibleServer, info.App, info.Version, apiVersionConstraint)
	}
	return info, nil
}
