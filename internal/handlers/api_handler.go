package handlers

import (
	"net/http"
	"time"

	"delivery_ledger/internal/models"
	"delivery_ledger/internal/redis"
	"delivery_ledger/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// APIHandler serves the record endpoints: couriers, entries, payments,
// expenses, rates and saved filter sessions.
type APIHandler struct {
	courierService    services.CourierService
	entryService      services.EntryService
	advanceService    services.AdvanceService
	remittanceService services.RemittanceService
	expenseService    services.ExpenseService
	rateService       services.RateService
	sessionService    services.SessionService
	loc               *time.Location
}

func NewAPIHandler(
	courierService services.CourierService,
	entryService services.EntryService,
	advanceService services.AdvanceService,
	remittanceService services.RemittanceService,
	expenseService services.ExpenseService,
	rateService services.RateService,
	sessionService services.SessionService,
	loc *time.Location,
) *APIHandler {
	return &APIHandler{
		courierService:    courierService,
		entryService:      entryService,
		advanceService:    advanceService,
		remittanceService: remittanceService,
		expenseService:    expenseService,
		rateService:       rateService,
		sessionService:    sessionService,
		loc:               loc,
	}
}

func (h *APIHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Couriers

func (h *APIHandler) CreateCourier(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	courier, err := h.courierService.CreateCourier(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, courier)
}

func (h *APIHandler) ListCouriers(c *gin.Context) {
	couriers, err := h.courierService.ListCouriers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"couriers": couriers})
}

func (h *APIHandler) DeleteCourier(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.courierService.DeleteCourier(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "status": "deleted"})
}

// Delivery entries

type areaCountRequest struct {
	Area      string `json:"area" binding:"required"`
	Delivered int    `json:"delivered"`
	Returned  int    `json:"returned"`
}

type entryRequest struct {
	Date              string             `json:"date" binding:"required"`
	CourierID         uuid.UUID          `json:"courier_id" binding:"required"`
	Areas             []areaCountRequest `json:"areas"`
	RVP               int                `json:"rvp"`
	ExpectedCOD       decimal.Decimal    `json:"expected_cod"`
	ActualCOD         decimal.Decimal    `json:"actual_cod"`
	CODShortageReason string             `json:"cod_shortage_reason"`
	OnSpotAdvance     decimal.Decimal    `json:"on_spot_advance"`
}

func (h *APIHandler) CreateEntry(c *gin.Context) {
	var req entryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	date, err := parseRecordDate(req.Date, h.loc)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, use YYYY-MM-DD"})
		return
	}

	entry := &models.DeliveryEntry{
		Date:              date,
		CourierID:         req.CourierID,
		RVP:               req.RVP,
		ExpectedCOD:       req.ExpectedCOD,
		ActualCOD:         req.ActualCOD,
		CODShortageReason: req.CODShortageReason,
		OnSpotAdvance:     req.OnSpotAdvance,
	}
	for _, a := range req.Areas {
		entry.Areas = append(entry.Areas, models.AreaCount{
			Area:      models.Area(a.Area),
			Delivered: a.Delivered,
			Returned:  a.Returned,
		})
	}

	if err := h.entryService.CreateEntry(c.Request.Context(), entry); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (h *APIHandler) ListEntries(c *gin.Context) {
	entries, err := h.entryService.ListEntries(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

func (h *APIHandler) DeleteEntry(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.entryService.DeleteEntry(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "status": "deleted"})
}

// Advances, remittances and expenses

type paymentRequest struct {
	Date        string          `json:"date" binding:"required"`
	CourierID   uuid.UUID       `json:"courier_id"`
	Amount      decimal.Decimal `json:"amount"`
	Notes       string          `json:"notes"`
	Description string          `json:"description"`
}

func (h *APIHandler) bindPayment(c *gin.Context) (*paymentRequest, time.Time, bool) {
	var req paymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return nil, time.Time{}, false
	}
	date, err := parseRecordDate(req.Date, h.loc)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, use YYYY-MM-DD"})
		return nil, time.Time{}, false
	}
	return &req, date, true
}

func (h *APIHandler) CreateAdvance(c *gin.Context) {
	req, date, ok := h.bindPayment(c)
	if !ok {
		return
	}
	advance := &models.AdvancePayment{Date: date, CourierID: req.CourierID, Amount: req.Amount}
	if err := h.advanceService.CreateAdvance(c.Request.Context(), advance); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, advance)
}

func (h *APIHandler) ListAdvances(c *gin.Context) {
	advances, err := h.advanceService.ListAdvances(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"advances": advances})
}

func (h *APIHandler) DeleteAdvance(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.advanceService.DeleteAdvance(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "status": "deleted"})
}

func (h *APIHandler) CreateRemittance(c *gin.Context) {
	req, date, ok := h.bindPayment(c)
	if !ok {
		return
	}
	payment := &models.CompanyCODPayment{Date: date, Amount: req.Amount, Notes: req.Notes}
	if err := h.remittanceService.CreateRemittance(c.Request.Context(), payment); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, payment)
}

func (h *APIHandler) ListRemittances(c *gin.Context) {
	payments, err := h.remittanceService.ListRemittances(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"remittances": payments})
}

func (h *APIHandler) DeleteRemittance(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.remittanceService.DeleteRemittance(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "status": "deleted"})
}

func (h *APIHandler) CreateExpense(c *gin.Context) {
	req, date, ok := h.bindPayment(c)
	if !ok {
		return
	}
	expense := &models.OwnerExpense{Date: date, Amount: req.Amount, Description: req.Description}
	if err := h.expenseService.CreateExpense(c.Request.Context(), expense); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, expense)
}

func (h *APIHandler) ListExpenses(c *gin.Context) {
	expenses, err := h.expenseService.ListExpenses(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"expenses": expenses})
}

func (h *APIHandler) DeleteExpense(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.expenseService.DeleteExpense(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "status": "deleted"})
}

// Rates

func (h *APIHandler) ListRates(c *gin.Context) {
	rates, err := h.rateService.ListRates(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	table, err := h.rateService.Table(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"rates":        rates,
		"courier_rate": table.CourierRate,
		"rvp_area":     table.RVPArea,
	})
}

func (h *APIHandler) UpsertRate(c *gin.Context) {
	var req struct {
		Name         string              `json:"name"`
		CompanyRate  decimal.Decimal     `json:"company_rate"`
		CourierRate  decimal.NullDecimal `json:"courier_rate"`
		IsRVPDefault bool                `json:"is_rvp_default"`
		IsActive     *bool               `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	rate := &models.AreaRate{
		Area:         models.Area(c.Param("area")),
		Name:         req.Name,
		CompanyRate:  req.CompanyRate,
		CourierRate:  req.CourierRate,
		IsRVPDefault: req.IsRVPDefault,
		IsActive:     req.IsActive == nil || *req.IsActive,
	}
	if err := h.rateService.UpsertRate(c.Request.Context(), rate); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rate)
}

// Filter sessions

func (h *APIHandler) SaveSession(c *gin.Context) {
	var req redis.FilterSession
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	for _, d := range []string{req.From, req.To} {
		if d == "" {
			continue
		}
		if _, err := parseDay(d, h.loc); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, use YYYY-MM-DD"})
			return
		}
	}
	session, err := h.sessionService.SaveFilters(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *APIHandler) GetSession(c *gin.Context) {
	session, err := h.sessionService.GetFilters(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *APIHandler) DeleteSession(c *gin.Context) {
	sessionID := c.Param("id")
	if err := h.sessionService.DeleteFilters(c.Request.Context(), sessionID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"session_id": sessionID,
		"status":     "deleted",
	})
}
