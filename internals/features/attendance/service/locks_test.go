package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEventLocksSerializeSameEvent(t *testing.T) {
	l := newEventLocks()
	release := l.lock(42)

	acquired := make(chan func())
	go func() { acquired <- l.lock(42) }()

	select {
	case <-acquired:
		t.Fatal("second lock acquired while first is held")
	case <-time.After(50 * time.Millisecond):
	}

	// other events are independent
	other := l.lock(43)
	other()

	release()
	select {
	case r := <-acquired:
		r()
	case <-time.After(time.Second):
		t.Fatal("second lock never acquired")
	}
	assert.Equal(t, 0, l.held(42))
	assert.Equal(t, 0, l.held(43))
}
