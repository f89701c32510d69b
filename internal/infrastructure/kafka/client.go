// Package kafka implements domain.Connector on top of franz-go (default) and
// IBM/sarama.
package kafka

import (
	"context"
	"errors"
	"fmt"

	"github.com/OliveiraNt/kafkalens/internal/domain"
	"github.com/OliveiraNt/kafkalens/internal/utils"
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/twmb/franz-go/pkg/sasl/plain"
)

const clientID = "kafkalens"

// FranzConnector opens franz-go clients.
type FranzConnector struct{}

// NewFranzConnector creates a connector backed by franz-go.
func NewFranzConnector() *FranzConnector {
	return &FranzConnector{}
}

// Connect builds a client and confirms liveness with a metadata request.
func (FranzConnector) Connect(ctx context.Context, servers []string, auth *domain.PlainAuth) (domain.KafkaClient, error) {
	opts := []kgo.Opt{
		kgo.SeedBrokers(servers...),
		kgo.ClientID(clientID),
	}
	if auth != nil {
		opts = append(opts, kgo.SASL(plain.Auth{User: auth.User, Pass: auth.Pass}.AsMechanism()))
	}

	client, err := kgo.NewClient(opts...)
	if err != nil {
		return nil, err
	}

	c := &Client{client: client, admin: NewAdmin(kadm.NewClient(client))}
	if err := c.Ping(ctx); err != nil {
		c.Close()
		return nil, err
	}
	utils.Logger.Debug("franz client connected", "servers", servers, "sasl", auth != nil)
	return c, nil
}

// Client implements domain.KafkaClient using franz-go.
type Client struct {
	client *kgo.Client
	admin  *Admin
}

// Ping issues a metadata request against the seed brokers.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.admin.BrokerMetadata(ctx)
	return franzError(err)
}

// ClusterInfo returns cluster information.
func (c *Client) ClusterInfo(ctx context.Context) (*domain.Cluster, error) {
	cl, err := c.admin.ClusterInfo(ctx)
	return cl, franzError(err)
}

// ListTopics returns topics with partition counts.
func (c *Client) ListTopics(ctx context.Context, showInternal bool) (map[string]int, error) {
	topics, err := c.admin.ListTopics(ctx, showInternal)
	return topics, franzError(err)
}

// ListConsumerGroups returns consumer group information
func (c *Client) ListConsumerGroups(ctx context.Context) ([]domain.ConsumerGroupSummary, error) {
	groups, err := c.admin.ListConsumerGroups(ctx)
	return groups, franzError(err)
}

// Close releases resources
func (c *Client) Close() {
	if c != nil && c.client != nil {
		c.client.Close()
	}
}

// franzError marks SASL rejections with domain.ErrAuthRejected.
func franzError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, kerr.SaslAuthenticationFailed) {
		return fmt.Errorf("%w: %w", domain.ErrAuthRejected, err)
	}
	return err
}
