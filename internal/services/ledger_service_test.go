package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"delivery_ledger/internal/ledger"
	"delivery_ledger/internal/models"
	mock_repository "delivery_ledger/internal/repository/mocks"
	"delivery_ledger/internal/services"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type ledgerFixture struct {
	couriers    *mock_repository.MockCourierRepository
	entries     *mock_repository.MockDeliveryRepository
	advances    *mock_repository.MockAdvanceRepository
	remittances *mock_repository.MockRemittanceRepository
	expenses    *mock_repository.MockExpenseRepository
	rates       *mock_repository.MockRateRepository
	svc         services.LedgerService
}

func newLedgerFixture(ctrl *gomock.Controller) *ledgerFixture {
	f := &ledgerFixture{
		couriers:    mock_repository.NewMockCourierRepository(ctrl),
		entries:     mock_repository.NewMockDeliveryRepository(ctrl),
		advances:    mock_repository.NewMockAdvanceRepository(ctrl),
		remittances: mock_repository.NewMockRemittanceRepository(ctrl),
		expenses:    mock_repository.NewMockExpenseRepository(ctrl),
		rates:       mock_repository.NewMockRateRepository(ctrl),
	}
	rates := services.NewRateService(f.rates, decimal.NewFromInt(14), zap.NewNop())
	f.svc = services.NewLedgerService(f.couriers, f.entries, f.advances, f.remittances, f.expenses, rates, zap.NewNop())
	return f
}

var (
	ramesh = models.Courier{ID: uuid.MustParse("11111111-1111-1111-1111-111111111111"), Name: "Ramesh"}
	suresh = models.Courier{ID: uuid.MustParse("22222222-2222-2222-2222-222222222222"), Name: "Suresh"}
)

// expectSnapshot wires one full store read.
func (f *ledgerFixture) expectSnapshot() {
	d1 := time.Date(2024, 7, 18, 10, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 7, 20, 19, 0, 0, 0, time.UTC)
	f.couriers.EXPECT().GetAll(gomock.Any()).Return([]models.Courier{ramesh, suresh}, nil)
	f.entries.EXPECT().GetAll(gomock.Any()).Return([]models.DeliveryEntry{
		{
			ID: uuid.New(), Date: d1, CourierID: ramesh.ID, CourierName: "Ramesh",
			Areas:       []models.AreaCount{{Area: models.AreaCharoda, Delivered: 50}},
			ExpectedCOD: decimal.NewFromInt(10000), ActualCOD: decimal.NewFromInt(10000),
		},
		{
			ID: uuid.New(), Date: d2, CourierID: suresh.ID, CourierName: "Suresh",
			Areas:       []models.AreaCount{{Area: models.AreaBhilai3, Delivered: 10}},
			ExpectedCOD: decimal.NewFromInt(3000), ActualCOD: decimal.NewFromInt(2900),
		},
		{
			ID: uuid.New(), Date: d2, CourierID: ramesh.ID, CourierName: "Ramesh",
			Areas: []models.AreaCount{{Area: models.AreaBhilai3, Delivered: 20}},
		},
	}, nil)
	f.advances.EXPECT().GetAll(gomock.Any()).Return([]models.AdvancePayment{
		{ID: uuid.New(), Date: time.Date(2024, 7, 19, 9, 0, 0, 0, time.UTC), CourierID: ramesh.ID, CourierName: "Ramesh", Amount: decimal.NewFromInt(1000)},
	}, nil)
	f.remittances.EXPECT().GetAll(gomock.Any()).Return([]models.CompanyCODPayment{
		{ID: uuid.New(), Date: d2, Amount: decimal.NewFromInt(5000)},
	}, nil)
	f.expenses.EXPECT().GetAll(gomock.Any()).Return([]models.OwnerExpense{
		{ID: uuid.New(), Date: d2, Amount: decimal.NewFromInt(200), Description: "Fuel"},
	}, nil)
	f.rates.EXPECT().GetAll(gomock.Any()).Return(nil, nil)
}

func TestLedgerService_Summary(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newLedgerFixture(ctrl)
	f.expectSnapshot()

	s, err := f.svc.Summary(context.Background(), services.LedgerQuery{Courier: ledger.AllCouriers})
	require.NoError(t, err)

	assert.Equal(t, 3, s.Entries)
	assert.Equal(t, 80, s.TotalWork)
	assert.True(t, decimal.NewFromInt(7700).Equal(s.CODInHand), s.CODInHand.String())
	require.Len(t, s.Couriers, 2)
	assert.Equal(t, "Ramesh", s.Couriers[0].CourierName)
}

func TestLedgerService_SummaryForOneCourier(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newLedgerFixture(ctrl)
	f.expectSnapshot()

	s, err := f.svc.Summary(context.Background(), services.LedgerQuery{Courier: suresh.ID.String()})
	require.NoError(t, err)

	// fleet totals stay, breakdown narrows
	assert.Equal(t, 3, s.Entries)
	require.Len(t, s.Couriers, 1)
	assert.Equal(t, suresh.ID.String(), s.Couriers[0].CourierID)
	assert.True(t, decimal.NewFromInt(100).Equal(s.Couriers[0].CODShortage))
}

func TestLedgerService_LedgerWithDateRange(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newLedgerFixture(ctrl)
	f.expectSnapshot()

	from := time.Date(2024, 7, 19, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 7, 20, 0, 0, 0, 0, time.UTC)
	txs, err := f.svc.Ledger(context.Background(), services.LedgerQuery{
		Range:   &ledger.DateRange{From: &from, To: &to},
		Courier: ramesh.ID.String(),
	})
	require.NoError(t, err)

	// the advance on the 19th and the delivery late on the 20th
	require.Len(t, txs, 2)
	assert.Equal(t, ledger.TransactionDelivery, txs[0].Type)
	assert.Equal(t, ledger.TransactionAdvance, txs[1].Type)
	assert.True(t, decimal.NewFromInt(-1000).Equal(txs[1].Balance))
	assert.True(t, decimal.NewFromInt(-720).Equal(txs[0].Balance), txs[0].Balance.String())
}

func TestLedgerService_ExportAndEarnings(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newLedgerFixture(ctrl)
	f.expectSnapshot()
	f.expectSnapshot()

	exp, err := f.svc.Export(context.Background(), services.LedgerQuery{Courier: ramesh.ID.String(), Area: string(models.AreaBhilai3)})
	require.NoError(t, err)
	require.Len(t, exp.Rows, 1)
	require.NotNil(t, exp.Summary)
	assert.Equal(t, "Ramesh", exp.Summary.CourierName)

	points, err := f.svc.Earnings(context.Background(), services.LedgerQuery{Courier: ramesh.ID.String()})
	require.NoError(t, err)
	assert.Len(t, points, 2)
}

func TestLedgerService_ResolveCourier(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newLedgerFixture(ctrl)
	ctx := context.Background()

	got, err := f.svc.ResolveCourier(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, ledger.AllCouriers, got)

	got, err = f.svc.ResolveCourier(ctx, ramesh.ID.String())
	require.NoError(t, err)
	assert.Equal(t, ramesh.ID.String(), got)

	f.couriers.EXPECT().GetAll(gomock.Any()).Return([]models.Courier{ramesh, suresh}, nil).Times(2)
	got, err = f.svc.ResolveCourier(ctx, "Suresh")
	require.NoError(t, err)
	assert.Equal(t, suresh.ID.String(), got)

	_, err = f.svc.ResolveCourier(ctx, "suresh")
	assert.ErrorIs(t, err, services.ErrCourierNotFound)
}

func TestLedgerService_StoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newLedgerFixture(ctrl)
	f.couriers.EXPECT().GetAll(gomock.Any()).Return(nil, nil)
	f.entries.EXPECT().GetAll(gomock.Any()).Return(nil, errors.New("timeout"))

	_, err := f.svc.Summary(context.Background(), services.LedgerQuery{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load delivery entries")
}
