package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"time"

	"delivery_ledger/internal/ledger"
	"delivery_ledger/internal/report"
	"delivery_ledger/internal/services"

	"github.com/gin-gonic/gin"
)

// LedgerHandler serves the computed views: summary, running ledger,
// earnings chart, CSV export and the WhatsApp digest.
type LedgerHandler struct {
	ledgerService       services.LedgerService
	sessionService      services.SessionService
	notificationService services.NotificationService
	loc                 *time.Location
}

func NewLedgerHandler(
	ledgerService services.LedgerService,
	sessionService services.SessionService,
	notificationService services.NotificationService,
	loc *time.Location,
) *LedgerHandler {
	return &LedgerHandler{
		ledgerService:       ledgerService,
		sessionService:      sessionService,
		notificationService: notificationService,
		loc:                 loc,
	}
}

// query reads from, to, courier and area. Missing values select everything.
func (h *LedgerHandler) query(c *gin.Context) (services.LedgerQuery, bool) {
	rng, err := dateRange(c, h.loc)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return services.LedgerQuery{}, false
	}
	courier, err := h.ledgerService.ResolveCourier(c.Request.Context(), strings.TrimSpace(c.Query("courier")))
	if err != nil {
		respondError(c, err)
		return services.LedgerQuery{}, false
	}
	area := strings.ToLower(strings.TrimSpace(c.Query("area")))
	if area == "" || area == strings.ToLower(ledger.AllAreas) {
		area = ledger.AllAreas
	}
	return services.LedgerQuery{Range: rng, Courier: courier, Area: area}, true
}

func (h *LedgerHandler) Summary(c *gin.Context) {
	q, ok := h.query(c)
	if !ok {
		return
	}
	summary, err := h.ledgerService.Summary(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *LedgerHandler) Ledger(c *gin.Context) {
	q, ok := h.query(c)
	if !ok {
		return
	}
	txs, err := h.ledgerService.Ledger(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"courier":      q.Courier,
		"transactions": txs,
	})
}

func (h *LedgerHandler) Earnings(c *gin.Context) {
	q, ok := h.query(c)
	if !ok {
		return
	}
	points, err := h.ledgerService.Earnings(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"points": points})
}

// Export renders the CSV. With ?store=1 the file is kept in Redis and a
// download key is returned instead.
func (h *LedgerHandler) Export(c *gin.Context) {
	q, ok := h.query(c)
	if !ok {
		return
	}
	exp, err := h.ledgerService.Export(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	var buf bytes.Buffer
	if err := report.WriteExportCSV(&buf, exp); err != nil {
		respondError(c, err)
		return
	}

	if c.Query("store") == "1" {
		key, err := h.sessionService.StoreExport(c.Request.Context(), buf.Bytes())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"key": key, "rows": len(exp.Rows)})
		return
	}
	h.sendCSV(c, exportFilename(q), buf.Bytes())
}

func (h *LedgerHandler) GetExport(c *gin.Context) {
	key := c.Param("key")
	data, err := h.sessionService.LoadExport(c.Request.Context(), key)
	if err != nil {
		respondError(c, err)
		return
	}
	h.sendCSV(c, "ledger-"+key+".csv", data)
}

func (h *LedgerHandler) DeleteExport(c *gin.Context) {
	if err := h.sessionService.DiscardExport(c.Request.Context(), c.Param("key")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Export deleted"})
}

func (h *LedgerHandler) sendCSV(c *gin.Context, filename string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

func exportFilename(q services.LedgerQuery) string {
	name := "ledger"
	if q.Courier != ledger.AllCouriers {
		name += "-" + q.Courier
	}
	if q.Range != nil && q.Range.From != nil {
		name += "-" + q.Range.From.Format(dateLayout)
		if q.Range.To != nil {
			name += "_" + q.Range.To.Format(dateLayout)
		}
	}
	return name + ".csv"
}

func (h *LedgerHandler) NotifySummary(c *gin.Context) {
	var req struct {
		Phone string `json:"phone"`
		Title string `json:"title"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}
	}
	q, ok := h.query(c)
	if !ok {
		return
	}
	title := req.Title
	if title == "" {
		title = "Ledger summary " + time.Now().In(h.loc).Format(dateLayout)
	}
	text, err := h.notificationService.SendSummary(c.Request.Context(), q, title, req.Phone)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "sent", "message": text})
}
