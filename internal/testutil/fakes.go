// Package testutil holds shared test doubles for the domain interfaces.
package testutil

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/OliveiraNt/kafkalens/internal/domain"
	"gopkg.in/yaml.v3"
)

// FakeKafkaClient is a test double implementing domain.KafkaClient with configurable responses.
type FakeKafkaClient struct {
	Servers        []string
	Cluster        *domain.Cluster
	Topics         map[string]int
	ConsumerGroups []domain.ConsumerGroupSummary
	Err            error

	closed atomic.Bool
}

func NewFakeKafkaClient() *FakeKafkaClient {
	return &FakeKafkaClient{
		Cluster: &domain.Cluster{ID: "fake-cluster", Controller: 1},
		Topics:  map[string]int{},
	}
}

func (f *FakeKafkaClient) Ping(_ context.Context) error { return f.Err }
func (f *FakeKafkaClient) ClusterInfo(_ context.Context) (*domain.Cluster, error) {
	return f.Cluster, f.Err
}
func (f *FakeKafkaClient) ListTopics(_ context.Context, _ bool) (map[string]int, error) {
	return f.Topics, f.Err
}
func (f *FakeKafkaClient) ListConsumerGroups(_ context.Context) ([]domain.ConsumerGroupSummary, error) {
	return f.ConsumerGroups, f.Err
}
func (f *FakeKafkaClient) Close()         { f.closed.Store(true) }
func (f *FakeKafkaClient) IsClosed() bool { return f.closed.Load() }

// ConnectCall records one FakeConnector.Connect invocation.
type ConnectCall struct {
	Servers []string
	Auth    *domain.PlainAuth
}

// FakeConnector records every Connect call and hands out FakeKafkaClients.
// Err fails every call; ServerErr fails calls whose first server matches.
type FakeConnector struct {
	mu        sync.Mutex
	Err       error
	ServerErr map[string]error
	// Gate, when set, is received from before Connect returns.
	Gate chan struct{}

	calls   []ConnectCall
	clients []*FakeKafkaClient
}

func NewFakeConnector() *FakeConnector {
	return &FakeConnector{ServerErr: map[string]error{}}
}

func (c *FakeConnector) Connect(ctx context.Context, servers []string, auth *domain.PlainAuth) (domain.KafkaClient, error) {
	c.mu.Lock()
	c.calls = append(c.calls, ConnectCall{Servers: slices.Clone(servers), Auth: auth})
	err := c.Err
	if len(servers) > 0 {
		if e, ok := c.ServerErr[servers[0]]; ok {
			err = e
		}
	}
	gate := c.Gate
	c.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}

	client := NewFakeKafkaClient()
	client.Servers = slices.Clone(servers)
	c.mu.Lock()
	c.clients = append(c.clients, client)
	c.mu.Unlock()
	return client, nil
}

// Calls returns a copy of the recorded Connect calls.
func (c *FakeConnector) Calls() []ConnectCall {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.calls)
}

// Clients returns the clients handed out so far, oldest first.
func (c *FakeConnector) Clients() []*FakeKafkaClient {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.clients)
}

// SetErr changes the error returned by subsequent calls.
func (c *FakeConnector) SetErr(err error) {
	c.mu.Lock()
	c.Err = err
	c.mu.Unlock()
}

// MemoryStore is an in-memory domain.KVStore. Values round-trip through YAML
// so decoding behaves like the file-backed store.
type MemoryStore struct {
	mu     sync.Mutex
	data   map[string][]byte
	SetErr error
	GetErr error
	writes int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[string][]byte{}}
}

func (m *MemoryStore) Get(key string, out any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return false, m.GetErr
	}
	raw, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, yaml.Unmarshal(raw, out)
}

func (m *MemoryStore) Set(key string, value any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetErr != nil {
		return m.SetErr
	}
	raw, err := yaml.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = raw
	m.writes++
	return nil
}

// SetRaw stores a YAML document under key without encoding.
func (m *MemoryStore) SetRaw(key, doc string) {
	m.mu.Lock()
	m.data[key] = []byte(doc)
	m.mu.Unlock()
}

// Raw returns the stored YAML for key.
func (m *MemoryStore) Raw(key string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return string(m.data[key])
}

// Writes reports how many successful Set calls were made.
func (m *MemoryStore) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
