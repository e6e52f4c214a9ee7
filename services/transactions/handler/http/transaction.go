package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/piresc/mycompta/internal/pkg/apperror"
	"github.com/piresc/mycompta/internal/pkg/logger"
	"github.com/piresc/mycompta/internal/pkg/middleware"
	"github.com/piresc/mycompta/internal/pkg/models"
	nrpkg "github.com/piresc/mycompta/internal/pkg/newrelic"
	"github.com/piresc/mycompta/internal/utils"
	"github.com/piresc/mycompta/services/transactions"
)

var errInvalidPayload = errors.New("invalid request payload")

// TransactionHandler handles HTTP requests for tva and transaction operations
type TransactionHandler struct {
	transactionUC transactions.TransactionUC
}

// NewTransactionHandler creates a new transaction HTTP handler
func NewTransactionHandler(transactionUC transactions.TransactionUC) *TransactionHandler {
	return &TransactionHandler{
		transactionUC: transactionUC,
	}
}

// CreateTransaction computes and saves a transaction for the caller
func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Transactions.Create")

	userID := middleware.UserID(c)
	if userID == "" {
		return utils.UnauthorizedResponse(c, "")
	}

	req, err := bindTVARequest(c)
	if err != nil {
		return utils.BadRequestResponse(c, err.Error())
	}

	transaction, err := h.transactionUC.CreateTransaction(c.Request().Context(), userID, req)
	if err != nil {
		nrpkg.NoticeTransactionError(txn, err)
		if errors.Is(err, apperror.ErrValidation) || errors.Is(err, apperror.ErrAuth) {
			return utils.KindResponse(c, err)
		}
		logger.ErrorCtx(c.Request().Context(), "Failed to create transaction",
			logger.Err(err))
		return utils.InternalServerErrorResponse(c, "Failed to create transaction: "+err.Error())
	}

	nrpkg.AddTransactionAttribute(txn, "transaction.id", transaction.ID())
	return c.JSON(http.StatusCreated, transaction.ToResponse())
}

// ListTransactions returns the caller's transactions, optionally for ?year=.
// Store failures yield an empty list.
func (h *TransactionHandler) ListTransactions(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Transactions.List")

	userID := middleware.UserID(c)
	if userID == "" {
		return utils.UnauthorizedResponse(c, "")
	}

	var year *int
	if raw := c.QueryParam("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return utils.BadRequestResponse(c, "year must be an integer")
		}
		year = &parsed
	}

	list, err := h.transactionUC.ListTransactions(c.Request().Context(), userID, year)
	if err != nil {
		logger.ErrorCtx(c.Request().Context(), "Failed to list transactions, answering with an empty list",
			logger.Err(err))
		nrpkg.NoticeTransactionError(txn, err)
		return c.JSON(http.StatusOK, []models.TransactionResponse{})
	}

	resp := make([]models.TransactionResponse, 0, len(list))
	for _, transaction := range list {
		resp = append(resp, transaction.ToResponse())
	}
	return c.JSON(http.StatusOK, resp)
}

// GetTransaction returns one of the caller's transactions
func (h *TransactionHandler) GetTransaction(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Transactions.Get")

	userID := middleware.UserID(c)
	if userID == "" {
		return utils.UnauthorizedResponse(c, "")
	}

	id := c.Param("id")
	if id == "" {
		return utils.BadRequestResponse(c, "Transaction ID is required")
	}

	transaction, err := h.transactionUC.GetTransaction(c.Request().Context(), userID, id)
	if err != nil {
		if !errors.Is(err, apperror.ErrNotFound) {
			logger.ErrorCtx(c.Request().Context(), "Failed to get transaction",
				logger.String("transaction_id", id),
				logger.Err(err))
			nrpkg.NoticeTransactionError(txn, err)
		}
		return utils.KindResponse(c, err)
	}

	return c.JSON(http.StatusOK, transaction.ToResponse())
}
