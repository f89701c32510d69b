package kafka

import (
	"testing"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kadm"
)

func TestClusterFromMetadata(t *testing.T) {
	t.Parallel()
	rack := "us-east-1a"
	meta := kadm.Metadata{
		Cluster:    "cluster-1",
		Controller: 2,
		Brokers: kadm.BrokerDetails{
			{NodeID: 2, Host: "b", Port: 9093, Rack: &rack},
			{NodeID: 1, Host: "a", Port: 9092},
		},
	}
	topics := kadm.TopicDetails{
		"orders": {Topic: "orders", Partitions: kadm.PartitionDetails{
			0: {Partition: 0, Leader: 1},
			1: {Partition: 1, Leader: 2},
			2: {Partition: 2, Leader: 1},
			3: {Partition: 3, Leader: -1},
		}},
		"__consumer_offsets": {Topic: "__consumer_offsets", IsInternal: true, Partitions: kadm.PartitionDetails{
			0: {Partition: 0, Leader: 2},
		}},
	}

	c := clusterFromMetadata(meta, topics)
	require.Equal(t, "cluster-1", c.ID)
	require.Equal(t, int32(2), c.Controller)
	require.Len(t, c.Brokers, 2)

	require.Equal(t, int32(1), c.Brokers[0].ID)
	require.Equal(t, "a", c.Brokers[0].Host)
	require.False(t, c.Brokers[0].IsController)
	require.Equal(t, 2, c.Brokers[0].LeaderPartitions)

	require.Equal(t, "us-east-1a", c.Brokers[1].Rack)
	require.True(t, c.Brokers[1].IsController)
	require.Equal(t, 1, c.Brokers[1].LeaderPartitions)
}

func TestClusterFromSarama(t *testing.T) {
	t.Parallel()
	brokers := []brokerRef{
		{id: 3, addr: "kafka-3:9094", rack: "r3"},
		{id: 1, addr: "kafka-1:9092"},
	}
	topics := []*sarama.TopicMetadata{
		{Name: "orders", Partitions: []*sarama.PartitionMetadata{{ID: 0, Leader: 1}, {ID: 1, Leader: 3}, {ID: 2, Leader: 1}}},
		{Name: "__consumer_offsets", IsInternal: true, Partitions: []*sarama.PartitionMetadata{{ID: 0, Leader: 3}}},
	}

	c := clusterFromSarama("cid", 3, brokers, topics)
	require.Equal(t, "cid", c.ID)
	require.Len(t, c.Brokers, 2)
	require.Equal(t, "kafka-1", c.Brokers[0].Host)
	require.Equal(t, int32(9092), c.Brokers[0].Port)
	require.Equal(t, 2, c.Brokers[0].LeaderPartitions)
	require.True(t, c.Brokers[1].IsController)
	require.Equal(t, "r3", c.Brokers[1].Rack)
	require.Equal(t, 1, c.Brokers[1].LeaderPartitions)
}
