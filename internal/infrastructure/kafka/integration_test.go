//go:build integration

package kafka

import (
	"context"
	"testing"
	"time"

	"github.com/OliveiraNt/kafkalens/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestConnectors_AgainstBroker(t *testing.T) {
	brokers := getTestBrokers(t)

	connectors := map[string]domain.Connector{
		"franz":  NewFranzConnector(),
		"sarama": NewSaramaConnector(),
	}
	for name, conn := range connectors {
		t.Run(name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			client, err := conn.Connect(ctx, brokers, nil)
			require.NoError(t, err)
			defer client.Close()

			require.NoError(t, client.Ping(ctx))

			cluster, err := client.ClusterInfo(ctx)
			require.NoError(t, err)
			require.NotEmpty(t, cluster.Brokers)

			topics, err := client.ListTopics(ctx, true)
			require.NoError(t, err)
			require.NotNil(t, topics)

			_, err = client.ListConsumerGroups(ctx)
			require.NoError(t, err)
		})
	}
}
