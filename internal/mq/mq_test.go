package mq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestNewMessage(t *testing.T) {
	runID := uuid.New()
	msg := NewMessage(MessageTypeRunCompleted, RunCompletedPayload{RunID: runID, Status: "SUCCEEDED"})

	if _, err := uuid.Parse(msg.ID); err != nil {
		t.Errorf("message ID should be a UUID: %v", err)
	}
	if msg.Timestamp.IsZero() {
		t.Error("timestamp should be set")
	}

	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded struct {
		Type    string `json:"type"`
		Payload struct {
			RunID  string `json:"run_id"`
			Status string `json:"status"`
		} `json:"payload"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Type != "run.completed" {
		t.Errorf("expected type run.completed, got %q", decoded.Type)
	}
	if decoded.Payload.RunID != runID.String() {
		t.Errorf("expected run_id %s, got %s", runID, decoded.Payload.RunID)
	}
}

func TestPublisher_ClosedConnection(t *testing.T) {
	conn := &Connection{closed: true}
	p := NewPublisher(conn, nil)

	err := p.PublishProjectCompleted(context.Background(), ProjectCompletedPayload{Project: "web"})
	if !errors.Is(err, ErrNotConnected) {
		t.Errorf("expected ErrNotConnected, got %v", err)
	}
	if conn.IsConnected() {
		t.Error("closed connection should not report connected")
	}
}

func TestConnection_CloseIdempotent(t *testing.T) {
	conn := &Connection{}
	if err := conn.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := conn.Close(); err != nil {
		t.Fatalf("second close should be a no-op, got %v", err)
	}
}

func TestWithChannel_CancelledContext(t *testing.T) {
	conn := &Connection{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := conn.WithChannel(ctx, nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
