package ws

import (
	"encoding/json"
	"testing"
)

func TestHubBroadcast(t *testing.T) {
	hub := NewHub()

	a := &Client{Send: make(chan []byte, 4), hub: hub}
	b := &Client{Send: make(chan []byte, 4), hub: hub}
	hub.Register(a)
	hub.Register(b)

	hub.Broadcast(ActivityEvent{Type: "report_verified", ReportID: 7, Severity: "high"})

	for _, c := range []*Client{a, b} {
		select {
		case msg := <-c.Send:
			var ev ActivityEvent
			if err := json.Unmarshal(msg, &ev); err != nil {
				t.Fatalf("bad payload: %v", err)
			}
			if ev.ReportID != 7 || ev.Type != "report_verified" {
				t.Errorf("unexpected event: %+v", ev)
			}
			if ev.Timestamp.IsZero() {
				t.Error("timestamp not filled in")
			}
		default:
			t.Fatal("client did not receive broadcast")
		}
	}
}

func TestHubUnregister(t *testing.T) {
	hub := NewHub()
	c := &Client{Send: make(chan []byte, 1), hub: hub}
	hub.Register(c)
	if hub.ClientCount() != 1 {
		t.Fatalf("count = %d", hub.ClientCount())
	}

	hub.Unregister(c)
	if hub.ClientCount() != 0 {
		t.Fatalf("count after unregister = %d", hub.ClientCount())
	}

	// double unregister must not panic on the closed channel
	hub.Unregister(c)
}

func TestHubDropsSlowClient(t *testing.T) {
	hub := NewHub()
	slow := &Client{Send: make(chan []byte, 1), hub: hub}
	hub.Register(slow)

	// fill the buffer, then broadcast once more
	hub.Broadcast(ActivityEvent{Type: "a"})
	hub.Broadcast(ActivityEvent{Type: "b"})

	if hub.ClientCount() != 0 {
		t.Fatalf("slow client not dropped, count = %d", hub.ClientCount())
	}
}
