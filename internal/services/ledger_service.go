package services

import (
	"context"
	"fmt"

	"delivery_ledger/internal/ledger"
	"delivery_ledger/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LedgerQuery is one dashboard selection. Courier holds a courier id or
// ledger.AllCouriers; Area an area or ledger.AllAreas.
type LedgerQuery struct {
	Range   *ledger.DateRange
	Courier string
	Area    string
}

func (q LedgerQuery) allCouriers() bool {
	return q.Courier == "" || q.Courier == ledger.AllCouriers
}

type LedgerService interface {
	// ResolveCourier turns an id, an exact display name or "All" into the
	// key the filters compare against.
	ResolveCourier(ctx context.Context, selection string) (string, error)
	Summary(ctx context.Context, q LedgerQuery) (*ledger.Summary, error)
	Ledger(ctx context.Context, q LedgerQuery) ([]ledger.Transaction, error)
	Export(ctx context.Context, q LedgerQuery) (*ledger.Export, error)
	Earnings(ctx context.Context, q LedgerQuery) ([]ledger.EarningsPoint, error)
}

type ledgerService struct {
	courierRepo    repository.CourierRepository
	entryRepo      repository.DeliveryRepository
	advanceRepo    repository.AdvanceRepository
	remittanceRepo repository.RemittanceRepository
	expenseRepo    repository.ExpenseRepository
	rates          RateService
	logger         *zap.Logger
}

func NewLedgerService(
	courierRepo repository.CourierRepository,
	entryRepo repository.DeliveryRepository,
	advanceRepo repository.AdvanceRepository,
	remittanceRepo repository.RemittanceRepository,
	expenseRepo repository.ExpenseRepository,
	rates RateService,
	logger *zap.Logger,
) LedgerService {
	return &ledgerService{
		courierRepo:    courierRepo,
		entryRepo:      entryRepo,
		advanceRepo:    advanceRepo,
		remittanceRepo: remittanceRepo,
		expenseRepo:    expenseRepo,
		rates:          rates,
		logger:         logger,
	}
}

// view is everything one computation needs, read fresh from the store.
type view struct {
	snapshot ledger.Snapshot
	rates    ledger.RateTable
	dir      ledger.Directory
}

func (s *ledgerService) load(ctx context.Context) (*view, error) {
	couriers, err := s.courierRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load couriers: %w", err)
	}
	entries, err := s.entryRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load delivery entries: %w", err)
	}
	advances, err := s.advanceRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load advances: %w", err)
	}
	remittances, err := s.remittanceRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load remittances: %w", err)
	}
	expenses, err := s.expenseRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load owner expenses: %w", err)
	}
	rates, err := s.rates.Table(ctx)
	if err != nil {
		return nil, err
	}

	return &view{
		snapshot: ledger.Snapshot{
			Entries:     entries,
			Advances:    advances,
			Remittances: remittances,
			Expenses:    expenses,
		},
		rates: rates,
		dir:   ledger.NewDirectory(couriers),
	}, nil
}

// filtered applies the date and area selection. The courier selection is
// left to the engine so expense pro-ration still sees the whole fleet.
func (v *view) filtered(q LedgerQuery) ledger.Snapshot {
	return ledger.Snapshot{
		Entries:     ledger.FilterByArea(ledger.FilterByDateRange(v.snapshot.Entries, q.Range), q.Area),
		Advances:    ledger.FilterByDateRange(v.snapshot.Advances, q.Range),
		Remittances: ledger.FilterByDateRange(v.snapshot.Remittances, q.Range),
		Expenses:    ledger.FilterByDateRange(v.snapshot.Expenses, q.Range),
	}
}

func (s *ledgerService) ResolveCourier(ctx context.Context, selection string) (string, error) {
	if selection == "" || selection == ledger.AllCouriers {
		return ledger.AllCouriers, nil
	}
	if id, err := uuid.Parse(selection); err == nil {
		// Removed couriers stay selectable by id; their records still exist.
		return id.String(), nil
	}
	couriers, err := s.courierRepo.GetAll(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load couriers: %w", err)
	}
	for _, c := range couriers {
		if c.Name == selection {
			return c.ID.String(), nil
		}
	}
	return "", invalid(ErrCourierNotFound, "%q", selection)
}

// Summary aggregates the selection. Totals always cover the whole fleet in
// the date and area window; a courier selection narrows Couriers to that one
// breakdown.
func (s *ledgerService) Summary(ctx context.Context, q LedgerQuery) (*ledger.Summary, error) {
	v, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	summary := ledger.Aggregate(v.filtered(q), v.rates, v.dir)
	if !q.allCouriers() {
		selected := summary.Couriers[:0:0]
		if c, ok := summary.Courier(q.Courier); ok {
			selected = append(selected, c)
		}
		summary.Couriers = selected
	}
	s.logger.Debug("summary computed",
		zap.String("courier", q.Courier),
		zap.String("area", q.Area),
		zap.Int("entries", summary.Entries),
	)
	return &summary, nil
}

func (s *ledgerService) Ledger(ctx context.Context, q LedgerQuery) ([]ledger.Transaction, error) {
	v, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	f := v.filtered(q)
	return ledger.BuildLedger(f.Entries, f.Advances, f.Expenses, q.Courier, v.rates, v.dir), nil
}

func (s *ledgerService) Export(ctx context.Context, q LedgerQuery) (*ledger.Export, error) {
	v, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	f := v.filtered(q)
	exp := ledger.ProjectForExport(f.Entries, f.Advances, q.Courier, v.rates, v.dir)
	return &exp, nil
}

// Earnings is the per-courier chart series for the date and area window.
// It ignores the courier selection.
func (s *ledgerService) Earnings(ctx context.Context, q LedgerQuery) ([]ledger.EarningsPoint, error) {
	v, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return ledger.EarningsSeries(ledger.Aggregate(v.filtered(q), v.rates, v.dir)), nil
}
