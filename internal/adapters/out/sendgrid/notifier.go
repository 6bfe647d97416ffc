// Package sendgrid provides the outbound email adapter for order lifecycle
// notifications.
package sendgrid

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/srCochayuyo/censudex-orders-service/internal/core/domain/model/order"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Notifier sends order lifecycle emails through SendGrid.
// Implements ports.Notifier. Callers treat delivery as fire-and-forget.
type Notifier struct {
	client    *sendgrid.Client
	fromName  string
	fromEmail string
	logger    *slog.Logger
}

// NewNotifier creates a notifier sending from the given address.
func NewNotifier(apiKey, fromName, fromEmail string, logger *slog.Logger) *Notifier {
	return &Notifier{
		client:    sendgrid.NewSendClient(apiKey),
		fromName:  fromName,
		fromEmail: fromEmail,
		logger:    logger.With("component", "Notifier"),
	}
}

// NotifyCreated emails the order confirmation.
func (n *Notifier) NotifyCreated(ctx context.Context, aggregate *order.Order) error {
	subject := fmt.Sprintf("Order %s received", aggregate.OrderNumber())
	body := fmt.Sprintf(
		"Hi %s,\n\nwe received your order %s for a total of $%.2f. "+
			"We will let you know as soon as it is confirmed.\n",
		aggregate.UserName(), aggregate.OrderNumber(), aggregate.TotalPrice(),
	)
	return n.send(ctx, aggregate, subject, body)
}

// NotifyStateChanged emails a status update. The tracking number is included
// when the order shipped.
func (n *Notifier) NotifyStateChanged(ctx context.Context, aggregate *order.Order, trackingNumber string) error {
	subject := fmt.Sprintf("Order %s is now %s", aggregate.OrderNumber(), aggregate.Status())
	body := fmt.Sprintf(
		"Hi %s,\n\nyour order %s is now %s.\n",
		aggregate.UserName(), aggregate.OrderNumber(), aggregate.Status(),
	)
	if trackingNumber != "" {
		body += fmt.Sprintf("\nTrack your shipment with number %s.\n", trackingNumber)
	}
	return n.send(ctx, aggregate, subject, body)
}

// NotifyCancelled emails the cancellation notice with its reason.
func (n *Notifier) NotifyCancelled(ctx context.Context, aggregate *order.Order, reason string) error {
	subject := fmt.Sprintf("Order %s was cancelled", aggregate.OrderNumber())
	body := fmt.Sprintf(
		"Hi %s,\n\nyour order %s was cancelled: %s.\n",
		aggregate.UserName(), aggregate.OrderNumber(), reason,
	)
	return n.send(ctx, aggregate, subject, body)
}

func (n *Notifier) send(ctx context.Context, aggregate *order.Order, subject, body string) error {
	from := mail.NewEmail(n.fromName, n.fromEmail)
	to := mail.NewEmail(aggregate.UserName(), aggregate.UserEmail())
	message := mail.NewSingleEmail(from, subject, to, body, body)

	response, err := n.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send notification email: %w", err)
	}
	if response.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("notification email rejected with status %d", response.StatusCode)
	}

	n.logger.Info("notification email sent",
		"orderId", aggregate.ID().String(),
		"subject", subject,
	)
	return nil
}
