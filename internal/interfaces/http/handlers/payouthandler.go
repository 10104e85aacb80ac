package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	payoutUsecases "liken/internal/application/payout/usecases"
	"liken/internal/interfaces/http/middleware"
	"liken/internal/shared/logger"
	"liken/internal/shared/utils"
)

type PayoutHandler struct {
	getSettingsUC    *payoutUsecases.GetPayoutSettingsUseCase
	updateSettingsUC *payoutUsecases.UpdatePayoutSettingsUseCase
	getScheduleUC    *payoutUsecases.GetUpcomingScheduleUseCase
	listHistoryUC    *payoutUsecases.ListPayoutHistoryUseCase
	logger           logger.Interface
}

func NewPayoutHandler(
	getSettingsUC *payoutUsecases.GetPayoutSettingsUseCase,
	updateSettingsUC *payoutUsecases.UpdatePayoutSettingsUseCase,
	getScheduleUC *payoutUsecases.GetUpcomingScheduleUseCase,
	listHistoryUC *payoutUsecases.ListPayoutHistoryUseCase,
	logger logger.Interface,
) *PayoutHandler {
	return &PayoutHandler{
		getSettingsUC:    getSettingsUC,
		updateSettingsUC: updateSettingsUC,
		getScheduleUC:    getScheduleUC,
		listHistoryUC:    listHistoryUC,
		logger:           logger,
	}
}

// GetSettings handles GET /agency/payout-settings
func (h *PayoutHandler) GetSettings(c *gin.Context) {
	dto, err := h.getSettingsUC.Execute(c.Request.Context(), middleware.AgencyID(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", dto)
}

type updateSettingsRequest struct {
	Frequency         string `json:"frequency" binding:"required"`
	MinThresholdCents int64  `json:"min_threshold_cents"`
	Enabled           bool   `json:"enabled"`
}

// UpdateSettings handles PUT /agency/payout-settings
func (h *PayoutHandler) UpdateSettings(c *gin.Context) {
	var req updateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	dto, err := h.updateSettingsUC.Execute(c.Request.Context(), payoutUsecases.UpdatePayoutSettingsCommand{
		AgencyID:          middleware.AgencyID(c),
		Frequency:         req.Frequency,
		MinThresholdCents: req.MinThresholdCents,
		Enabled:           req.Enabled,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "payout settings updated", dto)
}

// GetSchedule handles GET /agency/payout-schedule
func (h *PayoutHandler) GetSchedule(c *gin.Context) {
	dto, err := h.getScheduleUC.Execute(c.Request.Context(), middleware.AgencyID(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", dto)
}

// ListPayouts handles GET /agency/payouts
func (h *PayoutHandler) ListPayouts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	dtos, err := h.listHistoryUC.Execute(c.Request.Context(), middleware.AgencyID(c), limit, offset)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", dtos)
}
