package authclient

import (
	"context"

	"github.com/tipspace/go-auth-client/api"
)

// refreshState tracks where the coordinator is in its recovery cycle.
type refreshState int

const (
	stateNormal refreshState = iota
	stateRefreshing
)

// coordinator implements the expired-token recovery policy: when an
// authenticated call comes back 401, attempt exactly one refresh-and-retry
// before giving up. The explicit state plus the structure of Execute bound
// recovery to a single cycle, so an invalid refresh token can never produce a
// 401→refresh→401 loop.
type coordinator struct {
	client *Client
	state  refreshState
}

func newCoordinator(client *Client) *coordinator {
	return &coordinator{client: client}
}

// Execute runs op, recovering a 401 through one refresh-and-retry. Any other
// failure passes through untouched. A failing refresh, or a second 401 on the
// retry, forces a full sign-out before the error surfaces.
func (rc *coordinator) Execute(ctx context.Context, op func(context.Context) error) error {
	err := op(ctx)
	if err == nil || !api.IsUnauthorized(err) {
		return err
	}
	if rc.state == stateRefreshing {
		// Re-entered while recovering: no second cycle.
		return err
	}

	rc.state = stateRefreshing
	defer func() { rc.state = stateNormal }()

	if refreshErr := rc.client.RefreshAccessToken(ctx); refreshErr != nil {
		rc.signOut(ctx)
		return refreshErr
	}

	retryErr := op(ctx)
	if retryErr != nil && api.IsUnauthorized(retryErr) {
		rc.signOut(ctx)
	}
	return retryErr
}

func (rc *coordinator) signOut(ctx context.Context) {
	if err := rc.client.session.SignOut(ctx); err != nil {
		rc.client.log.Warn().Err(err).Msg("sign-out after failed recovery")
	}
}
