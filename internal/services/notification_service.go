package services

import (
	"context"
	"fmt"

	"delivery_ledger/internal/report"

	"go.uber.org/zap"
)

// Sender delivers a text message to a phone number.
type Sender interface {
	SendTextMessage(ctx context.Context, phone, message string) error
}

type NotificationService interface {
	// SendSummary computes the summary for q and sends it to phone, or to the
	// owner's number when phone is empty.
	SendSummary(ctx context.Context, q LedgerQuery, title, phone string) (string, error)
}

type notificationService struct {
	ledger     LedgerService
	sender     Sender
	ownerPhone string
	logger     *zap.Logger
}

func NewNotificationService(ledger LedgerService, sender Sender, ownerPhone string, logger *zap.Logger) NotificationService {
	return &notificationService{ledger: ledger, sender: sender, ownerPhone: ownerPhone, logger: logger}
}

func (s *notificationService) SendSummary(ctx context.Context, q LedgerQuery, title, phone string) (string, error) {
	if phone == "" {
		phone = s.ownerPhone
	}
	if phone == "" {
		return "", invalid(ErrNoRecipient, "set OWNER_WHATSAPP or pass a phone")
	}

	summary, err := s.ledger.Summary(ctx, q)
	if err != nil {
		return "", err
	}
	text := report.SummaryText(title, summary)
	if err := s.sender.SendTextMessage(ctx, phone, text); err != nil {
		s.logger.Error("failed to send summary", zap.String("phone", phone), zap.Error(err))
		return "", fmt.Errorf("failed to send summary: %w", err)
	}
	s.logger.Info("summary sent", zap.String("phone", phone), zap.String("title", title))
	return text, nil
}
