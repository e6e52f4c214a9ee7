package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/piresc/mycompta/internal/pkg/middleware"
	"github.com/piresc/mycompta/services/transactions"
	httpHandler "github.com/piresc/mycompta/services/transactions/handler/http"
)

// Handler wires the transaction HTTP handlers behind bearer authentication
type Handler struct {
	transactionHTTP *httpHandler.TransactionHandler
	verifier        middleware.TokenVerifier
}

// NewHandler creates a new combined handler
func NewHandler(transactionUC transactions.TransactionUC, verifier middleware.TokenVerifier) *Handler {
	return &Handler{
		transactionHTTP: httpHandler.NewTransactionHandler(transactionUC),
		verifier:        verifier,
	}
}

// RegisterRoutes registers the authenticated API routes
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	// auth is attached per route; a group middleware would also claim unknown paths
	auth := middleware.BearerAuth(h.verifier)
	api := e.Group("/api/v1")

	api.POST("/tva", h.transactionHTTP.CalculateTVA, auth)

	transactionsGroup := api.Group("/transactions")
	transactionsGroup.POST("", h.transactionHTTP.CreateTransaction, auth)
	transactionsGroup.GET("", h.transactionHTTP.ListTransactions, auth)
	transactionsGroup.GET("/:id", h.transactionHTTP.GetTransaction, auth)
}
