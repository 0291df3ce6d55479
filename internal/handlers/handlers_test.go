package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"delivery_ledger/internal/handlers"
	"delivery_ledger/internal/models"
	"delivery_ledger/internal/redis"
	mock_repository "delivery_ledger/internal/repository/mocks"
	"delivery_ledger/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/crypto/bcrypt"
)

type tempStore struct {
	sessions map[string]redis.FilterSession
	temp     map[string][]byte
}

func (s *tempStore) SetSession(_ context.Context, fs *redis.FilterSession, _ time.Duration) error {
	s.sessions[fs.ID] = *fs
	return nil
}

func (s *tempStore) GetSession(_ context.Context, id string) (*redis.FilterSession, error) {
	fs, ok := s.sessions[id]
	if !ok {
		return nil, redis.ErrSessionNotFound
	}
	return &fs, nil
}

func (s *tempStore) DeleteSession(_ context.Context, id string) error {
	delete(s.sessions, id)
	return nil
}

func (s *tempStore) SetTempData(_ context.Context, key string, value []byte, _ time.Duration) error {
	s.temp[key] = value
	return nil
}

func (s *tempStore) GetTempData(_ context.Context, key string) ([]byte, error) {
	v, ok := s.temp[key]
	if !ok {
		return nil, redis.ErrTempDataNotFound
	}
	return v, nil
}

func (s *tempStore) DeleteTempData(_ context.Context, key string) error {
	delete(s.temp, key)
	return nil
}

type nopSender struct{ sent []string }

func (n *nopSender) SendTextMessage(_ context.Context, phone, _ string) error {
	n.sent = append(n.sent, phone)
	return nil
}

type testServer struct {
	router      *gin.Engine
	couriers    *mock_repository.MockCourierRepository
	entries     *mock_repository.MockDeliveryRepository
	advances    *mock_repository.MockAdvanceRepository
	remittances *mock_repository.MockRemittanceRepository
	expenses    *mock_repository.MockExpenseRepository
	rates       *mock_repository.MockRateRepository
	sender      *nopSender
}

var (
	ramesh = models.Courier{ID: uuid.MustParse("11111111-1111-1111-1111-111111111111"), Name: "Ramesh"}
	suresh = models.Courier{ID: uuid.MustParse("22222222-2222-2222-2222-222222222222"), Name: "Suresh"}
)

func newTestServer(t *testing.T, ctrl *gomock.Controller, auth gin.HandlerFunc) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ts := &testServer{
		couriers:    mock_repository.NewMockCourierRepository(ctrl),
		entries:     mock_repository.NewMockDeliveryRepository(ctrl),
		advances:    mock_repository.NewMockAdvanceRepository(ctrl),
		remittances: mock_repository.NewMockRemittanceRepository(ctrl),
		expenses:    mock_repository.NewMockExpenseRepository(ctrl),
		rates:       mock_repository.NewMockRateRepository(ctrl),
		sender:      &nopSender{},
	}
	logger := zap.NewNop()
	loc := time.UTC

	rateService := services.NewRateService(ts.rates, decimal.NewFromInt(14), logger)
	ledgerService := services.NewLedgerService(ts.couriers, ts.entries, ts.advances, ts.remittances, ts.expenses, rateService, logger)
	sessionService := services.NewSessionService(&tempStore{sessions: map[string]redis.FilterSession{}, temp: map[string][]byte{}}, time.Hour, time.Hour, logger)

	api := handlers.NewAPIHandler(
		services.NewCourierService(ts.couriers, logger),
		services.NewEntryService(ts.entries, ts.couriers, rateService, logger),
		services.NewAdvanceService(ts.advances, ts.couriers, logger),
		services.NewRemittanceService(ts.remittances, logger),
		services.NewExpenseService(ts.expenses, logger),
		rateService,
		sessionService,
		loc,
	)
	lh := handlers.NewLedgerHandler(ledgerService, sessionService,
		services.NewNotificationService(ledgerService, ts.sender, "9876543210", logger), loc)

	if auth == nil {
		auth = handlers.OperatorAuth("admin", "", zap.NewNop())
	}
	ts.router = gin.New()
	handlers.RegisterRoutes(ts.router, api, lh, auth)
	return ts
}

func (ts *testServer) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

// expectSnapshot wires one full store read.
func (ts *testServer) expectSnapshot() {
	d := time.Date(2024, 7, 20, 17, 30, 0, 0, time.UTC)
	ts.couriers.EXPECT().GetAll(gomock.Any()).Return([]models.Courier{ramesh, suresh}, nil)
	ts.entries.EXPECT().GetAll(gomock.Any()).Return([]models.DeliveryEntry{
		{
			ID: uuid.New(), Date: d, CourierID: ramesh.ID, CourierName: "Ramesh",
			Areas: []models.AreaCount{{Area: models.AreaCharoda, Delivered: 50}}, RVP: 3,
			ExpectedCOD: decimal.NewFromInt(15000), ActualCOD: decimal.NewFromInt(15000),
			OnSpotAdvance: decimal.NewFromInt(500),
		},
		{
			ID: uuid.New(), Date: d.AddDate(0, 0, -5), CourierID: suresh.ID, CourierName: "Suresh",
			Areas: []models.AreaCount{{Area: models.AreaBhilai3, Delivered: 10}},
		},
	}, nil)
	ts.advances.EXPECT().GetAll(gomock.Any()).Return(nil, nil)
	ts.remittances.EXPECT().GetAll(gomock.Any()).Return(nil, nil)
	ts.expenses.EXPECT().GetAll(gomock.Any()).Return(nil, nil)
	ts.rates.EXPECT().GetAll(gomock.Any()).Return(nil, nil)
}

func TestCreateCourier(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ts := newTestServer(t, ctrl, nil)

	ts.couriers.EXPECT().GetAll(gomock.Any()).Return([]models.Courier{ramesh}, nil).Times(2)
	ts.couriers.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	w := ts.do(http.MethodPost, "/api/couriers", `{"name":"Mahesh"}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = ts.do(http.MethodPost, "/api/couriers", `{"name":"RAMESH"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = ts.do(http.MethodPost, "/api/couriers", `{"name":"M"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(http.MethodPost, "/api/couriers", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateEntry_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ts := newTestServer(t, ctrl, nil)

	body := `{"date":"2024-07-20","courier_id":"` + ramesh.ID.String() + `",` +
		`"areas":[{"area":"charoda","delivered":50}],"expected_cod":"18000","actual_cod":"18500"}`
	w := ts.do(http.MethodPost, "/api/entries", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "actual COD cannot exceed expected COD")

	w = ts.do(http.MethodPost, "/api/entries", `{"date":"20/07/2024","courier_id":"`+ramesh.ID.String()+`"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateEntry(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ts := newTestServer(t, ctrl, nil)

	ts.rates.EXPECT().GetAll(gomock.Any()).Return(nil, nil)
	ts.couriers.EXPECT().GetByID(gomock.Any(), ramesh.ID).Return(&ramesh, nil)
	ts.entries.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	body := `{"date":"2024-07-20","courier_id":"` + ramesh.ID.String() + `",` +
		`"areas":[{"area":"charoda","delivered":50,"returned":2}],"rvp":3,` +
		`"expected_cod":15000,"actual_cod":15000,"on_spot_advance":500}`
	w := ts.do(http.MethodPost, "/api/entries", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var got models.DeliveryEntry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Ramesh", got.CourierName)
	assert.Equal(t, 3, got.RVP)
}

func TestSummary(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ts := newTestServer(t, ctrl, nil)
	ts.expectSnapshot()

	w := ts.do(http.MethodGet, "/api/summary?from=2024-07-20&to=2024-07-20", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got struct {
		Entries   int    `json:"entries"`
		TotalWork int    `json:"total_work"`
		NetPayout string `json:"net_payout"`
		Profit    string `json:"profit"`
		Couriers  []struct {
			CourierName string `json:"courier_name"`
		} `json:"couriers"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 1, got.Entries)
	assert.Equal(t, 53, got.TotalWork)
	assert.Equal(t, "242", got.NetPayout)
	assert.Equal(t, "265", got.Profit)
	require.Len(t, got.Couriers, 1)
	assert.Equal(t, "Ramesh", got.Couriers[0].CourierName)
}

func TestSummary_BadQuery(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ts := newTestServer(t, ctrl, nil)

	w := ts.do(http.MethodGet, "/api/summary?from=yesterday", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(http.MethodGet, "/api/summary?from=2024-07-20&to=2024-07-01", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	ts.couriers.EXPECT().GetAll(gomock.Any()).Return([]models.Courier{ramesh}, nil)
	w = ts.do(http.MethodGet, "/api/ledger?courier=Nobody", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLedger_ByCourierName(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ts := newTestServer(t, ctrl, nil)

	ts.couriers.EXPECT().GetAll(gomock.Any()).Return([]models.Courier{ramesh, suresh}, nil)
	ts.expectSnapshot()

	w := ts.do(http.MethodGet, "/api/ledger?courier=Suresh", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got struct {
		Courier      string `json:"courier"`
		Transactions []struct {
			Type    string `json:"type"`
			Balance string `json:"balance"`
		} `json:"transactions"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, suresh.ID.String(), got.Courier)
	require.Len(t, got.Transactions, 1)
	assert.Equal(t, "delivery", got.Transactions[0].Type)
	assert.Equal(t, "140", got.Transactions[0].Balance)
}

func TestExport(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ts := newTestServer(t, ctrl, nil)
	ts.expectSnapshot()
	ts.expectSnapshot()

	w := ts.do(http.MethodGet, "/api/export", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), `filename="ledger.csv"`)
	direct := w.Body.String()
	assert.True(t, strings.HasPrefix(direct, "Date,Courier,"))
	assert.NotContains(t, direct, "Summary")

	w = ts.do(http.MethodGet, "/api/export?store=1", "")
	require.Equal(t, http.StatusCreated, w.Code)
	var stored struct {
		Key  string `json:"key"`
		Rows int    `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stored))
	assert.Equal(t, 2, stored.Rows)

	w = ts.do(http.MethodGet, "/api/export/"+stored.Key, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, direct, w.Body.String())

	w = ts.do(http.MethodGet, "/api/export/unknown", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = ts.do(http.MethodDelete, "/api/export/"+stored.Key, "")
	require.Equal(t, http.StatusOK, w.Code)
	w = ts.do(http.MethodGet, "/api/export/"+stored.Key, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNotifySummary(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ts := newTestServer(t, ctrl, nil)
	ts.expectSnapshot()

	w := ts.do(http.MethodPost, "/api/notify/summary", `{"title":"July"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, []string{"9876543210"}, ts.sender.sent)
}

func TestSessions(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ts := newTestServer(t, ctrl, nil)

	w := ts.do(http.MethodPost, "/api/sessions", `{"from":"2024-07-01","to":"2024-07-31","courier":"All","area":"charoda"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var saved redis.FilterSession
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &saved))
	require.NotEmpty(t, saved.ID)

	w = ts.do(http.MethodGet, "/api/sessions/"+saved.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"area":"charoda"`)

	w = ts.do(http.MethodDelete, "/api/sessions/"+saved.ID, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = ts.do(http.MethodGet, "/api/sessions/"+saved.ID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = ts.do(http.MethodPost, "/api/sessions", `{"from":"July"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDelete_NotFoundAndBadID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ts := newTestServer(t, ctrl, nil)

	id := uuid.New()
	ts.expenses.EXPECT().Delete(gomock.Any(), id).Return(services.ErrNotFound)

	w := ts.do(http.MethodDelete, "/api/expenses/"+id.String(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = ts.do(http.MethodDelete, "/api/entries/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOperatorAuth(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	ts := newTestServer(t, ctrl, handlers.OperatorAuth("admin", string(hash), zap.NewNop()))

	w := ts.do(http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = ts.do(http.MethodGet, "/api/couriers", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NotEmpty(t, w.Header().Get("WWW-Authenticate"))

	req := httptest.NewRequest(http.MethodGet, "/api/couriers", nil)
	req.SetBasicAuth("admin", "wrong")
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	ts.couriers.EXPECT().GetAll(gomock.Any()).Return([]models.Courier{ramesh}, nil)
	req = httptest.NewRequest(http.MethodGet, "/api/couriers", nil)
	req.SetBasicAuth("admin", "s3cret")
	rec = httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestOperatorAuth_WarnsWhenDisabled(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	handlers.OperatorAuth("admin", "", zap.New(core))
	require.Equal(t, 1, logs.Len())
	assert.Contains(t, logs.All()[0].Message, "operator auth disabled")

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	handlers.OperatorAuth("admin", string(hash), zap.New(core))
	assert.Equal(t, 1, logs.Len())
}
