package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	entitlementdto "github.com/nutriplan/nutriplan/internal/application/entitlement/dto"
	"github.com/nutriplan/nutriplan/internal/shared/logger"
	"github.com/nutriplan/nutriplan/internal/shared/utils"
)

type getEntitlementUseCase interface {
	Execute(ctx context.Context, userID uint) (*entitlementdto.EntitlementDTO, error)
}

type EntitlementHandler struct {
	getUC  getEntitlementUseCase
	logger logger.Interface
}

func NewEntitlementHandler(getUC getEntitlementUseCase, logger logger.Interface) *EntitlementHandler {
	return &EntitlementHandler{getUC: getUC, logger: logger}
}

// GetEntitlement returns the caller's active plan and quota usage.
// @Summary Get my entitlement
// @Tags Entitlement
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.APIResponse{data=EntitlementResponse}
// @Failure 403 {object} utils.APIResponse "No active subscription"
// @Router /entitlement [get]
func (h *EntitlementHandler) GetEntitlement(c *gin.Context) {
	who, err := currentCaller(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getUC.Execute(c.Request.Context(), who.UserID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}
