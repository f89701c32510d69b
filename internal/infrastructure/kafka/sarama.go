package kafka

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sort"
	"strconv"
	"time"

	"github.com/IBM/sarama"
	"github.com/OliveiraNt/kafkalens/internal/domain"
	"github.com/OliveiraNt/kafkalens/internal/utils"
)

// SaramaConnector opens IBM/sarama clients.
type SaramaConnector struct {
	// Version is the protocol version negotiated with the brokers.
	Version sarama.KafkaVersion
}

// NewSaramaConnector creates a connector backed by sarama.
func NewSaramaConnector() *SaramaConnector {
	return &SaramaConnector{Version: sarama.V2_1_0_0}
}

func (s *SaramaConnector) config(ctx context.Context, auth *domain.PlainAuth) *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.ClientID = clientID
	cfg.Version = s.Version
	cfg.Metadata.Retry.Max = 0
	if dl, ok := ctx.Deadline(); ok {
		if d := time.Until(dl); d > 0 {
			cfg.Net.DialTimeout = d
			cfg.Net.ReadTimeout = d
			cfg.Net.WriteTimeout = d
		}
	}
	if auth != nil {
		cfg.Net.SASL.Enable = true
		cfg.Net.SASL.Mechanism = sarama.SASLTypePlaintext
		cfg.Net.SASL.Handshake = true
		cfg.Net.SASL.User = auth.User
		cfg.Net.SASL.Password = auth.Pass
	}
	return cfg
}

// Connect opens a sarama client. sarama.NewClient blocks on the initial
// metadata fetch, so it runs in a goroutine bounded by ctx; a client that
// arrives after ctx is done is closed.
func (s *SaramaConnector) Connect(ctx context.Context, servers []string, auth *domain.PlainAuth) (domain.KafkaClient, error) {
	cfg := s.config(ctx, auth)

	type result struct {
		client sarama.Client
		err    error
	}
	done := make(chan result, 1)
	go func() {
		c, err := sarama.NewClient(servers, cfg)
		done <- result{c, err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			return nil, saramaError(r.err)
		}
		utils.Logger.Debug("sarama client connected", "servers", servers, "sasl", auth != nil)
		return &SaramaClient{client: r.client}, nil
	case <-ctx.Done():
		go func() {
			if r := <-done; r.client != nil {
				_ = r.client.Close()
			}
		}()
		return nil, ctx.Err()
	}
}

// SaramaClient implements domain.KafkaClient using sarama.
type SaramaClient struct {
	client sarama.Client
}

func (c *SaramaClient) Ping(ctx context.Context) error {
	return await(ctx, func() error { return c.client.RefreshMetadata() })
}

func (c *SaramaClient) ClusterInfo(ctx context.Context) (*domain.Cluster, error) {
	var out *domain.Cluster
	err := await(ctx, func() error {
		resp, err := c.metadata()
		if err != nil {
			return err
		}
		brokers := make([]brokerRef, 0, len(resp.Brokers))
		for _, b := range resp.Brokers {
			brokers = append(brokers, brokerRef{id: b.ID(), addr: b.Addr(), rack: b.Rack()})
		}
		clusterID := ""
		if resp.ClusterID != nil {
			clusterID = *resp.ClusterID
		}
		out = clusterFromSarama(clusterID, resp.ControllerID, brokers, resp.Topics)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *SaramaClient) ListTopics(ctx context.Context, showInternal bool) (map[string]int, error) {
	var out map[string]int
	err := await(ctx, func() error {
		resp, err := c.metadata()
		if err != nil {
			return err
		}
		out = make(map[string]int, len(resp.Topics))
		for _, t := range resp.Topics {
			if t.IsInternal && !showInternal {
				continue
			}
			out[t.Name] = len(t.Partitions)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *SaramaClient) ListConsumerGroups(ctx context.Context) ([]domain.ConsumerGroupSummary, error) {
	var out []domain.ConsumerGroupSummary
	err := await(ctx, func() error {
		// The admin shares the client; closing it would close the session.
		admin, err := sarama.NewClusterAdminFromClient(c.client)
		if err != nil {
			return err
		}
		listed, err := admin.ListConsumerGroups()
		if err != nil {
			return saramaError(err)
		}
		names := make([]string, 0, len(listed))
		for name := range listed {
			names = append(names, name)
		}
		if len(names) == 0 {
			return nil
		}
		described, err := admin.DescribeConsumerGroups(names)
		if err != nil {
			return saramaError(err)
		}
		for _, g := range described {
			out = append(out, domain.ConsumerGroupSummary{
				GroupID: g.GroupId,
				State:   g.State,
				Members: len(g.Members),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GroupID < out[j].GroupID })
	return out, nil
}

func (c *SaramaClient) Close() {
	if c != nil && c.client != nil {
		if err := c.client.Close(); err != nil && !errors.Is(err, sarama.ErrClosedClient) {
			utils.Logger.Warn("closing sarama client", "err", err)
		}
	}
}

func (c *SaramaClient) metadata() (*sarama.MetadataResponse, error) {
	b := c.client.LeastLoadedBroker()
	if b == nil {
		return nil, sarama.ErrOutOfBrokers
	}
	if err := b.Open(c.client.Config()); err != nil && !errors.Is(err, sarama.ErrAlreadyConnected) {
		return nil, err
	}
	resp, err := b.GetMetadata(sarama.NewMetadataRequest(c.client.Config().Version, nil))
	if err != nil {
		return nil, saramaError(err)
	}
	return resp, nil
}

type brokerRef struct {
	id   int32
	addr string
	rack string
}

func clusterFromSarama(clusterID string, controller int32, brokers []brokerRef, topics []*sarama.TopicMetadata) *domain.Cluster {
	leaderCounts := make(map[int32]int)
	for _, t := range topics {
		if t.IsInternal {
			continue
		}
		for _, p := range t.Partitions {
			if p.Leader >= 0 {
				leaderCounts[p.Leader]++
			}
		}
	}

	details := make([]domain.BrokerDetail, 0, len(brokers))
	for _, b := range brokers {
		host, portStr, err := net.SplitHostPort(b.addr)
		if err != nil {
			host = b.addr
		}
		port, _ := strconv.Atoi(portStr)
		details = append(details, domain.BrokerDetail{
			ID:               b.id,
			Host:             host,
			Port:             int32(port),
			Rack:             b.rack,
			IsController:     b.id == controller,
			LeaderPartitions: leaderCounts[b.id],
		})
	}
	sort.Slice(details, func(i, j int) bool { return details[i].ID < details[j].ID })

	return &domain.Cluster{ID: clusterID, Controller: controller, Brokers: details}
}

// await runs fn, returning early with ctx.Err() if ctx ends first. sarama
// calls are not context-aware.
func await(ctx context.Context, fn func() error) error {
	done := make(chan error, 1)
	go func() { done <- fn() }()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// saramaError marks SASL rejections with domain.ErrAuthRejected.
func saramaError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sarama.ErrSASLAuthenticationFailed) {
		return fmt.Errorf("%w: %w", domain.ErrAuthRejected, err)
	}
	return err
}
