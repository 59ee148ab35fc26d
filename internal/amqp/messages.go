package amqp

import (
	"encoding/json"
	"time"
)

// Event kinds carried on the score events queue.
const (
	EventScoreSaved   = "score.saved"
	EventScoreDeleted = "score.deleted"
)

// ScoreEventMessage notifies external consumers that a record changed.
// It carries the date key and score only; consumers fetch the full record
// if they need it.
type ScoreEventMessage struct {
	Event     string    `json:"event"`
	Date      string    `json:"date"`
	Score     int       `json:"score,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func NewScoreSavedMessage(date string, score int) *ScoreEventMessage {
	return &ScoreEventMessage{
		Event:     EventScoreSaved,
		Date:      date,
		Score:     score,
		Timestamp: time.Now(),
	}
}

func NewScoreDeletedMessage(date string) *ScoreEventMessage {
	return &ScoreEventMessage{
		Event:     EventScoreDeleted,
		Date:      date,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *ScoreEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ScoreEventMessageFromJSON creates a message from JSON bytes.
func ScoreEventMessageFromJSON(data []byte) (*ScoreEventMessage, error) {
	var msg ScoreEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
