package server

import (
	"encoding/json"
	"testing"
	"time"
)

func TestBrokerPublish(t *testing.T) {
	b := NewBroker()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	b.Publish(LeaderboardEvent{Email: "maria@example.com", BestScore: 4500})

	select {
	case data := <-ch:
		var ev LeaderboardEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			t.Fatalf("unmarshal event: %v", err)
		}
		if ev.Email != "maria@example.com" || ev.BestScore != 4500 {
			t.Errorf("unexpected event: %+v", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestBrokerUnsubscribe(t *testing.T) {
	b := NewBroker()
	ch := b.Subscribe()
	b.Unsubscribe(ch)

	b.Publish(LeaderboardEvent{Email: "maria@example.com", BestScore: 100})

	select {
	case <-ch:
		t.Fatal("unsubscribed channel received event")
	default:
	}
}

func TestBrokerSlowSubscriberDoesNotBlock(t *testing.T) {
	b := NewBroker()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	// Fill the buffer and keep publishing; Publish must never block.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			b.Publish(LeaderboardEvent{Email: "slow@example.com", BestScore: i})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on slow subscriber")
	}
}
