package kafka

import (
	"context"
	"sort"
	"time"

	"github.com/OliveiraNt/kafkalens/internal/domain"
	"github.com/twmb/franz-go/pkg/kadm"
)

const (
	metadataTimeout = 5 * time.Second
	groupsTimeout   = 10 * time.Second
)

// Admin adapts kadm to the read-only views kafkalens renders.
type Admin struct {
	client *kadm.Client
}

// NewAdmin creates a new Admin
func NewAdmin(client *kadm.Client) *Admin {
	return &Admin{client: client}
}

// BrokerMetadata returns broker metadata (used for probes and health checks)
func (a *Admin) BrokerMetadata(ctx context.Context) (kadm.Metadata, error) {
	return a.client.BrokerMetadata(ctx)
}

// ListTopics returns topics as a simplified map name->partitions
func (a *Admin) ListTopics(ctx context.Context, showInternal bool) (map[string]int, error) {
	cctx, cancel := context.WithTimeout(ctx, metadataTimeout)
	defer cancel()

	var m kadm.TopicDetails
	var err error

	if showInternal {
		m, err = a.client.ListTopicsWithInternal(cctx)
	} else {
		m, err = a.client.ListTopics(cctx)
	}

	if err != nil {
		return nil, err
	}

	out := make(map[string]int, len(m))
	for name, info := range m {
		out[name] = len(info.Partitions)
	}
	return out, nil
}

// ClusterInfo returns the cluster id, controller and per-broker details.
func (a *Admin) ClusterInfo(ctx context.Context) (*domain.Cluster, error) {
	cctx, cancel := context.WithTimeout(ctx, metadataTimeout)
	defer cancel()

	meta, err := a.client.BrokerMetadata(cctx)
	if err != nil {
		return nil, err
	}

	topics, err := a.client.ListTopics(cctx)
	if err != nil {
		return nil, err
	}

	return clusterFromMetadata(meta, topics), nil
}

// ListConsumerGroups returns a list of consumer groups with basic info
func (a *Admin) ListConsumerGroups(ctx context.Context) ([]domain.ConsumerGroupSummary, error) {
	cctx, cancel := context.WithTimeout(ctx, groupsTimeout)
	defer cancel()

	groups, err := a.client.DescribeGroups(cctx)
	if err != nil {
		return nil, err
	}

	result := make([]domain.ConsumerGroupSummary, 0, len(groups))
	for groupID, group := range groups {
		result = append(result, domain.ConsumerGroupSummary{
			GroupID: groupID,
			State:   group.State,
			Members: len(group.Members),
		})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].GroupID < result[j].GroupID })

	return result, nil
}

func clusterFromMetadata(meta kadm.Metadata, topics kadm.TopicDetails) *domain.Cluster {
	leaderCounts := make(map[int32]int)
	for _, topic := range topics {
		if topic.IsInternal {
			continue
		}
		for _, partition := range topic.Partitions {
			if partition.Leader >= 0 {
				leaderCounts[partition.Leader]++
			}
		}
	}

	brokers := make([]domain.BrokerDetail, 0, len(meta.Brokers))
	for _, b := range meta.Brokers {
		rack := ""
		if b.Rack != nil {
			rack = *b.Rack
		}
		brokers = append(brokers, domain.BrokerDetail{
			ID:               b.NodeID,
			Host:             b.Host,
			Port:             b.Port,
			Rack:             rack,
			IsController:     b.NodeID == meta.Controller,
			LeaderPartitions: leaderCounts[b.NodeID],
		})
	}
	sort.Slice(brokers, func(i, j int) bool { return brokers[i].ID < brokers[j].ID })

	return &domain.Cluster{
		ID:         meta.Cluster,
		Controller: meta.Controller,
		Brokers:    brokers,
	}
}
