package notifier

import (
	"context"
	"fmt"
	"sync"
	"time"

	"resale/domain"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

// Store is the slice of the repository the dispatcher needs.
type Store interface {
	GetUserByID(ctx context.Context, id string) (domain.User, error)
	CreateNotification(ctx context.Context, notification domain.Notification) (domain.Notification, error)
}

// EventKind names a marketplace moment worth telling someone about.
type EventKind int

const (
	ProductAdded EventKind = iota + 1
	BidCreated
	BidResponded
	OrderUpdated
)

type Event struct {
	Kind        EventKind
	SenderID    string
	ReceiverIDs []string
	ProductID   string
	Product     string
	Amount      string
	BidStatus   domain.BidStatus
	OrderStatus domain.OrderStatus
}

// Notifier fans marketplace events out to notification rows. Delivery is best
// effort: a full queue drops the event and a failed insert is only logged, so
// the state transitions that emit events never block or roll back on it.
type Notifier struct {
	repository Store
	queue      chan Event
	done       chan struct{}
	stop       sync.Once
}

func New(repository Store, queueSize int) *Notifier {
	if queueSize <= 0 {
		queueSize = 256
	}

	n := &Notifier{
		repository: repository,
		queue:      make(chan Event, queueSize),
		done:       make(chan struct{}),
	}

	go n.run()
	return n
}

// Notify enqueues without blocking.
func (n *Notifier) Notify(event Event) {
	select {
	case n.queue <- event:
	default:
		zap.L().Warn("Notification queue full, dropping event",
			zap.Int("kind", int(event.Kind)),
			zap.String("productId", event.ProductID),
		)
	}
}

// Close drains pending events and stops the worker.
func (n *Notifier) Close() {
	n.stop.Do(func() {
		close(n.queue)
		<-n.done
	})
}

func (n *Notifier) run() {
	defer close(n.done)

	for event := range n.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		n.deliver(ctx, event)
		cancel()
	}
}

func (n *Notifier) deliver(ctx context.Context, event Event) {
	if len(event.ReceiverIDs) == 0 {
		return
	}

	sender, err := n.repository.GetUserByID(ctx, event.SenderID)
	if err != nil {
		zap.L().Error("Failed to load notification sender",
			zap.String("senderId", event.SenderID),
			zap.Error(err),
		)
		return
	}

	title, description, kind := describe(event, sender.Name)

	notification := domain.Notification{
		SenderID:    event.SenderID,
		ReceiverIDs: pq.StringArray(event.ReceiverIDs),
		Type:        kind,
		Title:       title,
		Description: description,
	}
	if event.ProductID != "" {
		productID := event.ProductID
		notification.ProductID = &productID
	}

	if _, err := n.repository.CreateNotification(ctx, notification); err != nil {
		zap.L().Error("Failed to persist notification",
			zap.Int("kind", int(event.Kind)),
			zap.String("productId", event.ProductID),
			zap.Error(err),
		)
	}
}

func describe(event Event, senderName string) (string, string, domain.NotificationType) {
	switch event.Kind {
	case ProductAdded:
		return "New sell request",
			fmt.Sprintf("%s listed %s for ₹%s.", senderName, event.Product, event.Amount),
			domain.NotificationBid
	case BidCreated:
		return "New offer",
			fmt.Sprintf("%s offered ₹%s for %s.", senderName, event.Amount, event.Product),
			domain.NotificationBid
	case BidResponded:
		return "Offer " + bidVerb(event.BidStatus),
			fmt.Sprintf("%s %s the offer of ₹%s for %s.",
				senderName, bidVerb(event.BidStatus), event.Amount, event.Product),
			domain.NotificationBid
	case OrderUpdated:
		return "Order update",
			fmt.Sprintf("%s %s for %s.", senderName, orderPhrase(event.OrderStatus), event.Product),
			domain.NotificationOrder
	default:
		return "", "", domain.NotificationBid
	}
}

func bidVerb(status domain.BidStatus) string {
	switch status {
	case domain.BidAccepted:
		return "accepted"
	case domain.BidRejected:
		return "rejected"
	case domain.BidModified:
		return "countered"
	default:
		return "updated"
	}
}

func orderPhrase(status domain.OrderStatus) string {
	switch status {
	case domain.OrderPickupDateEstimated:
		return "scheduled a pickup date"
	case domain.OrderPickedUp:
		return "marked the item as picked up"
	case domain.OrderPaid:
		return "completed the payment"
	default:
		return "updated the order"
	}
}
