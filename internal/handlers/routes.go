package handlers

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts every endpoint. auth guards the /api group.
func RegisterRoutes(router *gin.Engine, api *APIHandler, ledgerHandler *LedgerHandler, auth gin.HandlerFunc) {
	router.GET("/healthz", api.Health)

	group := router.Group("/api", auth)
	{
		group.POST("/couriers", api.CreateCourier)
		group.GET("/couriers", api.ListCouriers)
		group.DELETE("/couriers/:id", api.DeleteCourier)

		group.POST("/entries", api.CreateEntry)
		group.GET("/entries", api.ListEntries)
		group.DELETE("/entries/:id", api.DeleteEntry)

		group.POST("/advances", api.CreateAdvance)
		group.GET("/advances", api.ListAdvances)
		group.DELETE("/advances/:id", api.DeleteAdvance)

		group.POST("/remittances", api.CreateRemittance)
		group.GET("/remittances", api.ListRemittances)
		group.DELETE("/remittances/:id", api.DeleteRemittance)

		group.POST("/expenses", api.CreateExpense)
		group.GET("/expenses", api.ListExpenses)
		group.DELETE("/expenses/:id", api.DeleteExpense)

		group.GET("/rates", api.ListRates)
		group.PUT("/rates/:area", api.UpsertRate)

		group.POST("/sessions", api.SaveSession)
		group.GET("/sessions/:id", api.GetSession)
		group.DELETE("/sessions/:id", api.DeleteSession)

		group.GET("/summary", ledgerHandler.Summary)
		group.GET("/ledger", ledgerHandler.Ledger)
		group.GET("/earnings", ledgerHandler.Earnings)
		group.GET("/export", ledgerHandler.Export)
		group.GET("/export/:key", ledgerHandler.GetExport)
		group.DELETE("/export/:key", ledgerHandler.DeleteExport)
		group.POST("/notify/summary", ledgerHandler.NotifySummary)
	}
}
