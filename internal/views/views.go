// Package views holds the navigable broker views and the Navigator that
// builds them lazily against the active session.
package views

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/OliveiraNt/kafkalens/internal/application"
	"github.com/OliveiraNt/kafkalens/internal/domain"
)

const (
	SlotOverview application.Slot = iota
	SlotTopics
	SlotGroups
)

// ErrUnknownSlot is returned for a slot with no registered view.
var ErrUnknownSlot = fmt.Errorf("%w: unknown view slot", domain.ErrValidation)

var slotNames = map[application.Slot]string{
	SlotOverview: "overview",
	SlotTopics:   "topics",
	SlotGroups:   "consumer_groups",
}

// Name returns the display name of slot.
func Name(slot application.Slot) string {
	if n, ok := slotNames[slot]; ok {
		return n
	}
	return fmt.Sprintf("slot_%d", int(slot))
}

// New constructs an uninitialized view for slot.
func New(slot application.Slot) (application.View, error) {
	switch slot {
	case SlotOverview:
		return &OverviewView{}, nil
	case SlotTopics:
		return &TopicsView{}, nil
	case SlotGroups:
		return &GroupsView{}, nil
	default:
		return nil, ErrUnknownSlot
	}
}

// OverviewView shows the cluster id, controller and brokers.
type OverviewView struct {
	Cluster  *domain.Cluster `json:"cluster"`
	LoadedAt time.Time       `json:"loaded_at"`
}

func (v *OverviewView) Init(ctx context.Context, client domain.KafkaClient) error {
	c, err := client.ClusterInfo(ctx)
	if err != nil {
		return err
	}
	v.Cluster = c
	v.LoadedAt = time.Now()
	return nil
}

// TopicRow is one line of the topics view.
type TopicRow struct {
	Name       string `json:"name"`
	Partitions int    `json:"partitions"`
}

// TopicsView lists user topics with their partition counts.
type TopicsView struct {
	Topics   []TopicRow `json:"topics"`
	LoadedAt time.Time  `json:"loaded_at"`
}

func (v *TopicsView) Init(ctx context.Context, client domain.KafkaClient) error {
	topics, err := client.ListTopics(ctx, false)
	if err != nil {
		return err
	}
	rows := make([]TopicRow, 0, len(topics))
	for name, partitions := range topics {
		rows = append(rows, TopicRow{Name: name, Partitions: partitions})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
	v.Topics = rows
	v.LoadedAt = time.Now()
	return nil
}

// GroupsView lists consumer groups.
type GroupsView struct {
	Groups   []domain.ConsumerGroupSummary `json:"groups"`
	LoadedAt time.Time                     `json:"loaded_at"`
}

func (v *GroupsView) Init(ctx context.Context, client domain.KafkaClient) error {
	groups, err := client.ListConsumerGroups(ctx)
	if err != nil {
		return err
	}
	if groups == nil {
		groups = []domain.ConsumerGroupSummary{}
	}
	v.Groups = groups
	v.LoadedAt = time.Now()
	return nil
}
