package amqp

import (
	"testing"
	"time"
)

func TestScoreSavedMessage(t *testing.T) {
	msg := NewScoreSavedMessage("2025-08-21", 5)
	if msg.Event != EventScoreSaved {
		t.Fatalf("event = %s", msg.Event)
	}
	if msg.Date != "2025-08-21" || msg.Score != 5 {
		t.Fatalf("payload = %+v", msg)
	}
	if msg.Timestamp.IsZero() || time.Since(msg.Timestamp) > time.Minute {
		t.Fatalf("timestamp not set: %v", msg.Timestamp)
	}
}

func TestScoreEventMessageRoundTrip(t *testing.T) {
	body, err := NewScoreDeletedMessage("2025-08-21").ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	got, err := ScoreEventMessageFromJSON(body)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Event != EventScoreDeleted || got.Date != "2025-08-21" {
		t.Fatalf("got %+v", got)
	}
	if got.Score != 0 {
		t.Fatalf("delete events carry no score, got %d", got.Score)
	}
}

func TestScoreEventMessageFromJSONRejectsGarbage(t *testing.T) {
	if _, err := ScoreEventMessageFromJSON([]byte("not json")); err == nil {
		t.Fatal("expected error")
	}
}
