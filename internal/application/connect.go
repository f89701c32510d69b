package application

import (
	"context"
	"errors"
	"time"

	"github.com/OliveiraNt/kafkalens/internal/domain"
	"github.com/OliveiraNt/kafkalens/internal/utils"
	"github.com/cenkalti/backoff/v4"
)

// ConnectOptions bounds every probe and activation.
type ConnectOptions struct {
	// Timeout covers all attempts of one connect.
	Timeout time.Duration
	// Retries is the number of extra attempts after a transient failure.
	Retries int
	// InitialInterval is the first backoff delay.
	InitialInterval time.Duration
}

func DefaultConnectOptions() ConnectOptions {
	return ConnectOptions{
		Timeout:         10 * time.Second,
		Retries:         1,
		InitialInterval: 250 * time.Millisecond,
	}
}

func (o ConnectOptions) withDefaults() ConnectOptions {
	def := DefaultConnectOptions()
	if o.Timeout <= 0 {
		o.Timeout = def.Timeout
	}
	if o.Retries < 0 {
		o.Retries = 0
	}
	if o.InitialInterval <= 0 {
		o.InitialInterval = def.InitialInterval
	}
	return o
}

// connectWithRetry opens a client, retrying transient failures with
// exponential backoff. Auth rejections are never retried. Any failure is
// returned as a *domain.ConnectError.
func connectWithRetry(ctx context.Context, connector domain.Connector, servers []string, auth *domain.PlainAuth, opts ConnectOptions) (domain.KafkaClient, error) {
	opts = opts.withDefaults()
	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	var client domain.KafkaClient
	attempt := 0
	op := func() error {
		attempt++
		c, err := connector.Connect(ctx, servers, auth)
		if err != nil {
			if errors.Is(err, domain.ErrAuthRejected) {
				return backoff.Permanent(err)
			}
			utils.Logger.Debug("connect attempt failed", "servers", servers, "attempt", attempt, "err", err)
			return err
		}
		client = c
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = opts.InitialInterval
	policy := backoff.WithContext(backoff.WithMaxRetries(b, uint64(opts.Retries)), ctx)

	if err := backoff.Retry(op, policy); err != nil {
		return nil, domain.NewConnectError(servers, err)
	}
	return client, nil
}
