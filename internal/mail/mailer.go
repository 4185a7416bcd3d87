// Package mail defines the notification boundary. Delivery itself is an
// external collaborator; callers fire notifications after their state change
// is durable and log failures without surfacing them.
package mail

import (
	"context"

	"go.uber.org/zap"

	"freightdesk/internal/model"
)

// Mailer sends customer-facing notifications.
type Mailer interface {
	OrderStatusChanged(ctx context.Context, order *model.Order, note string) error
	PaymentReceived(ctx context.Context, order *model.Order, payment *model.Payment) error
	QuoteReceived(ctx context.Context, quote *model.Quote) error
	Welcome(ctx context.Context, user *model.User) error
}

// LogMailer writes notifications to the log instead of delivering them.
// Used in development and as the default until an SMTP/gateway
// implementation is configured.
type LogMailer struct {
	logger *zap.Logger
}

// NewLogMailer creates a log-backed mailer.
func NewLogMailer(logger *zap.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

var _ Mailer = (*LogMailer)(nil)

func (m *LogMailer) OrderStatusChanged(_ context.Context, order *model.Order, note string) error {
	m.logger.Info("mail: order status changed",
		zap.String("order_number", order.OrderNumber),
		zap.String("to", order.CustomerEmail),
		zap.String("status", string(order.Status)),
		zap.String("note", note),
	)
	return nil
}

func (m *LogMailer) PaymentReceived(_ context.Context, order *model.Order, payment *model.Payment) error {
	m.logger.Info("mail: payment received",
		zap.String("order_number", order.OrderNumber),
		zap.String("to", order.CustomerEmail),
		zap.String("payment_number", payment.PaymentNumber),
		zap.String("amount", payment.Amount.String()),
	)
	return nil
}

func (m *LogMailer) QuoteReceived(_ context.Context, quote *model.Quote) error {
	m.logger.Info("mail: quote received",
		zap.String("quote_number", quote.QuoteNumber),
		zap.String("to", quote.CustomerEmail),
	)
	return nil
}

func (m *LogMailer) Welcome(_ context.Context, user *model.User) error {
	m.logger.Info("mail: welcome",
		zap.String("to", user.Email),
		zap.String("name", user.Name),
	)
	return nil
}
