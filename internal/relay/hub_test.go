package relay

import (
	"errors"
	"testing"
)

type fakeSubscriber struct {
	received [][]byte
	failSend bool
	closed   bool
}

func (f *fakeSubscriber) Send(payload []byte) error {
	if f.failSend {
		return errors.New("send failed")
	}
	f.received = append(f.received, payload)
	return nil
}

func (f *fakeSubscriber) Close() {
	f.closed = true
}

func TestEmitReachesOnlyJoinedChannel(t *testing.T) {
	hub := NewHub()
	receiver := &fakeSubscriber{}
	other := &fakeSubscriber{}
	hub.Join("user-b", receiver)
	hub.Join("user-c", other)

	hub.Emit("user-b", []byte("hello"))

	if len(receiver.received) != 1 || string(receiver.received[0]) != "hello" {
		t.Fatalf("expected exactly one delivery, got %v", receiver.received)
	}
	if len(other.received) != 0 {
		t.Fatalf("expected no delivery to other channel, got %v", other.received)
	}
}

func TestEmitToUnjoinedUserIsDropped(t *testing.T) {
	hub := NewHub()
	// no one joined; must not panic and delivers nothing
	hub.Emit("user-x", []byte("into the void"))
}

func TestLeaveStopsDelivery(t *testing.T) {
	hub := NewHub()
	sub := &fakeSubscriber{}
	hub.Join("user-b", sub)
	hub.Leave("user-b", sub)

	hub.Emit("user-b", []byte("hello"))
	if len(sub.received) != 0 {
		t.Fatalf("expected no delivery after leave, got %v", sub.received)
	}
}

func TestFailedSendEvictsConnection(t *testing.T) {
	hub := NewHub()
	broken := &fakeSubscriber{failSend: true}
	healthy := &fakeSubscriber{}
	hub.Join("user-b", broken)
	hub.Join("user-b", healthy)

	hub.Emit("user-b", []byte("one"))
	if !broken.closed {
		t.Fatal("expected broken connection to be closed")
	}
	if len(healthy.received) != 1 {
		t.Fatalf("expected healthy connection to still receive, got %v", healthy.received)
	}

	hub.Emit("user-b", []byte("two"))
	if len(healthy.received) != 2 {
		t.Fatalf("expected second delivery, got %v", healthy.received)
	}
}
