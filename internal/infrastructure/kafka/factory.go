package kafka

import (
	"fmt"

	"github.com/OliveiraNt/kafkalens/internal/domain"
)

// NewConnector returns the connector for the configured client library:
// "franz" (default) or "sarama".
func NewConnector(kind string) (domain.Connector, error) {
	switch kind {
	case "", "franz":
		return NewFranzConnector(), nil
	case "sarama":
		return NewSaramaConnector(), nil
	default:
		return nil, fmt.Errorf("unknown kafka client %q", kind)
	}
}
