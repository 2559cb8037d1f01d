package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chanPublisher struct {
	events chan string
	err    error
}

func (p *chanPublisher) Publish(ctx context.Context, event string, payload map[string]interface{}) error {
	p.events <- event
	return p.err
}

func TestQueueNotifier_Publishes(t *testing.T) {
	publisher := &chanPublisher{events: make(chan string, 1)}
	notifier := NewQueueNotifier(publisher, testLogger())

	notifier.Notify(EventPayoutCompleted, map[string]interface{}{"payout_id": "p-1"})

	select {
	case event := <-publisher.events:
		assert.Equal(t, EventPayoutCompleted, event)
	case <-time.After(time.Second):
		require.Fail(t, "event was not published")
	}
}

func TestQueueNotifier_SwallowsFailures(t *testing.T) {
	publisher := &chanPublisher{events: make(chan string, 1), err: errors.New("broker down")}
	notifier := NewQueueNotifier(publisher, testLogger())

	assert.NotPanics(t, func() {
		notifier.Notify(EventTipSent, nil)
	})
	<-publisher.events

	assert.NotPanics(t, func() {
		NewQueueNotifier(nil, testLogger()).Notify(EventTipSent, nil)
	})
}
