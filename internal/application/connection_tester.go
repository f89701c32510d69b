package application

import (
	"context"
	"slices"
	"strings"

	"github.com/OliveiraNt/kafkalens/internal/domain"
	"github.com/OliveiraNt/kafkalens/internal/metrics"
	"github.com/OliveiraNt/kafkalens/internal/utils"
	"github.com/invopop/ctxi18n/i18n"
)

// TestResult is the outcome of a connection probe.
type TestResult struct {
	OK      bool
	Servers []string
	Err     error
}

// Result converts the probe outcome to a displayable Result.
func (r TestResult) Result(ctx context.Context) Result {
	if !r.OK {
		return ResultOf(ctx, r.Err)
	}
	ctx = withDefaultLocale(ctx)
	return Result{
		Kind:    KindOK,
		Message: i18n.T(ctx, "test.ok", i18n.M{"servers": strings.Join(r.Servers, ",")}),
	}
}

// ConnectionTester probes candidate connection parameters. It holds no
// mutable state and never touches stored profiles or the active session.
type ConnectionTester struct {
	connector domain.Connector
	opts      ConnectOptions
}

// NewConnectionTester creates a tester using connector for every probe.
func NewConnectionTester(connector domain.Connector, opts ConnectOptions) *ConnectionTester {
	return &ConnectionTester{connector: connector, opts: opts}
}

// Test opens a throwaway client against servers. SASL/PLAIN is used iff both
// credentials are set. Input errors are reported without any network I/O,
// and the probe client is always closed.
func (t *ConnectionTester) Test(ctx context.Context, servers []string, username, password string) TestResult {
	servers = slices.Clone(servers)
	if len(servers) == 0 {
		metrics.ConnectionTests.WithLabelValues(metrics.ResultInvalid).Inc()
		return TestResult{Servers: servers, Err: domain.ErrEmptyServers}
	}
	if err := domain.ValidateCredentials(username, password); err != nil {
		metrics.ConnectionTests.WithLabelValues(metrics.ResultInvalid).Inc()
		return TestResult{Servers: servers, Err: err}
	}

	client, err := connectWithRetry(ctx, t.connector, servers, domain.NewPlainAuth(username, password), t.opts)
	if err != nil {
		metrics.ConnectionTests.WithLabelValues(metrics.ResultFailure).Inc()
		utils.Logger.Info("connection test failed", "servers", servers, "err", err)
		return TestResult{Servers: servers, Err: err}
	}
	client.Close()

	metrics.ConnectionTests.WithLabelValues(metrics.ResultSuccess).Inc()
	utils.Logger.Info("connection test succeeded", "servers", servers)
	return TestResult{OK: true, Servers: servers}
}
