// Package domain defines the core entities of kafkalens: connection profiles,
// the broker metadata the views render, the error taxonomy shared by every
// layer, and the abstractions over Kafka clients and durable storage.
package domain

// Cluster holds the broker-level metadata of a live connection.
type Cluster struct {
	ID         string         `json:"id"`
	Controller int32          `json:"controller"`
	Brokers    []BrokerDetail `json:"brokers"`
}

// BrokerDetail holds detailed information about a broker
type BrokerDetail struct {
	ID               int32  `json:"id"`
	Host             string `json:"host"`
	Port             int32  `json:"port"`
	Rack             string `json:"rack,omitempty"`
	IsController     bool   `json:"is_controller"`
	LeaderPartitions int    `json:"leader_partitions"`
}

// ConsumerGroupSummary holds basic info about a consumer group
type ConsumerGroupSummary struct {
	GroupID string `json:"group_id"`
	State   string `json:"state"`
	Members int    `json:"members"`
}
