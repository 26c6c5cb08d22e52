package amqp

import (
	"encoding/json"
	"time"
)

// RatesReloadMessage signals that the rate source has new data and the
// service should rebuild its table snapshot. The message only names the
// source; the consumer re-reads the source itself.
type RatesReloadMessage struct {
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`
}

// NewRatesReloadMessage creates a reload message for the given source.
func NewRatesReloadMessage(source string) *RatesReloadMessage {
	return &RatesReloadMessage{
		Source:    source,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *RatesReloadMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// RatesReloadMessageFromJSON creates a message from JSON bytes.
func RatesReloadMessageFromJSON(data []byte) (*RatesReloadMessage, error) {
	var msg RatesReloadMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
