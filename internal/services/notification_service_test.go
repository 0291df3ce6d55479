package services_test

import (
	"context"
	"errors"
	"testing"

	"delivery_ledger/internal/ledger"
	"delivery_ledger/internal/services"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingSender struct {
	phone   string
	message string
	err     error
}

func (r *recordingSender) SendTextMessage(_ context.Context, phone, message string) error {
	r.phone = phone
	r.message = message
	return r.err
}

func TestNotificationService_SendSummary(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newLedgerFixture(ctrl)
	f.expectSnapshot()

	sender := &recordingSender{}
	svc := services.NewNotificationService(f.svc, sender, "9876543210", zap.NewNop())

	text, err := svc.SendSummary(context.Background(), services.LedgerQuery{Courier: ledger.AllCouriers}, "July", "")
	require.NoError(t, err)
	assert.Equal(t, "9876543210", sender.phone)
	assert.Equal(t, text, sender.message)
	assert.Contains(t, text, "*July*")
	assert.Contains(t, text, "COD in hand: ₹7700.00")
}

func TestNotificationService_Errors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("no recipient", func(t *testing.T) {
		svc := services.NewNotificationService(nil, &recordingSender{}, "", zap.NewNop())
		_, err := svc.SendSummary(context.Background(), services.LedgerQuery{}, "July", "")
		assert.ErrorIs(t, err, services.ErrNoRecipient)
	})

	t.Run("gateway failure", func(t *testing.T) {
		f := newLedgerFixture(ctrl)
		f.expectSnapshot()
		sender := &recordingSender{err: errors.New("device offline")}
		svc := services.NewNotificationService(f.svc, sender, "", zap.NewNop())

		_, err := svc.SendSummary(context.Background(), services.LedgerQuery{}, "July", "09876543210")
		require.Error(t, err)
		assert.Equal(t, "09876543210", sender.phone)
	})
}
