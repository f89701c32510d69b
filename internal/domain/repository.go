package domain

import "context"

// KVStore is a durable key-value store. Values are encoded by the store;
// Get decodes into out and reports whether the key exists.
type KVStore interface {
	Get(key string, out any) (bool, error)
	Set(key string, value any) error
}

// ProfileRepository persists connection profiles keyed by name.
type ProfileRepository interface {
	Upsert(p ConnectionProfile) error
	Replace(previous string, p ConnectionProfile) error
	Delete(name string) error
	List() []ConnectionProfile
	Get(name string) (ConnectionProfile, error)
}

// Connector opens broker clients. Connect returns a client only after the
// broker answered a metadata request; on failure nothing is left open.
type Connector interface {
	Connect(ctx context.Context, servers []string, auth *PlainAuth) (KafkaClient, error)
}

// KafkaClient is a live broker connection.
type KafkaClient interface {
	Ping(ctx context.Context) error
	ClusterInfo(ctx context.Context) (*Cluster, error)
	ListTopics(ctx context.Context, showInternal bool) (map[string]int, error)
	ListConsumerGroups(ctx context.Context) ([]ConsumerGroupSummary, error)
	Close()
}
