package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/piresc/mycompta/internal/pkg/logger"
	"github.com/piresc/mycompta/internal/pkg/middleware"
	"github.com/piresc/mycompta/internal/pkg/models"
	nrpkg "github.com/piresc/mycompta/internal/pkg/newrelic"
	"github.com/piresc/mycompta/internal/utils"
)

// CalculateTVA returns the tva and total for an amount without saving it
func (h *TransactionHandler) CalculateTVA(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "TVA.Calculate")

	userID := middleware.UserID(c)
	if userID == "" {
		return utils.UnauthorizedResponse(c, "")
	}

	req, err := bindTVARequest(c)
	if err != nil {
		return utils.BadRequestResponse(c, err.Error())
	}

	resp, err := h.transactionUC.CalculateTVA(c.Request().Context(), userID, req)
	if err != nil {
		logger.WarnCtx(c.Request().Context(), "TVA calculation rejected",
			logger.Err(err))
		nrpkg.NoticeTransactionError(txn, err)
		return utils.KindResponse(c, err)
	}

	return c.JSON(http.StatusOK, resp)
}

// bindTVARequest decodes and validates a TVARequest body
func bindTVARequest(c echo.Context) (*models.TVARequest, error) {
	var req models.TVARequest
	if err := c.Bind(&req); err != nil {
		return nil, errInvalidPayload
	}
	if err := c.Validate(&req); err != nil {
		return nil, err
	}
	return &req, nil
}
