package domain_test

import (
	"testing"

	"github.com/OliveiraNt/kafkalens/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestCluster_Basic(t *testing.T) {
	t.Parallel()
	c := domain.Cluster{ID: "id", Controller: 1, Brokers: []domain.BrokerDetail{{ID: 1, Host: "b1", Port: 9092, IsController: true}}}
	require.Equal(t, "id", c.ID)
	require.True(t, c.Brokers[0].IsController)
}
