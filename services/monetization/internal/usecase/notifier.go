package usecase

import (
	"context"
	"time"

	"lick-scroll-monetization/pkg/logger"
)

const (
	EventPurchaseCompleted   = "purchase.completed"
	EventSubscriptionStarted = "subscription.started"
	EventTipSent             = "tip.sent"
	EventTransactionRefunded = "transaction.refunded"
	EventPayoutRequested     = "payout.requested"
	EventPayoutProcessing    = "payout.processing"
	EventPayoutCompleted     = "payout.completed"
	EventPayoutFailed        = "payout.failed"
	EventPayoutCancelled     = "payout.cancelled"
)

const notifyTimeout = 5 * time.Second

// Notifier delivers events to the notification service. It never reports
// failure to the caller.
type Notifier interface {
	Notify(event string, payload map[string]interface{})
}

// Publisher is implemented by queue.Client.
type Publisher interface {
	Publish(ctx context.Context, event string, payload map[string]interface{}) error
}

type queueNotifier struct {
	publisher Publisher
	logger    *logger.Logger
}

// NewQueueNotifier publishes asynchronously. With a nil publisher events are
// only logged.
func NewQueueNotifier(publisher Publisher, logger *logger.Logger) Notifier {
	return &queueNotifier{publisher: publisher, logger: logger}
}

func (n *queueNotifier) Notify(event string, payload map[string]interface{}) {
	if n.publisher == nil {
		n.logger.Debug("Notification %s dropped: no publisher configured", event)
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if err := n.publisher.Publish(ctx, event, payload); err != nil {
			n.logger.Warn("Failed to publish %s notification: %v", event, err)
		}
	}()
}
