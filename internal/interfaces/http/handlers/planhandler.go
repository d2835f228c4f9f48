package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	planusecases "github.com/nutriplan/nutriplan/internal/application/plan/usecases"
	"github.com/nutriplan/nutriplan/internal/shared/logger"
	"github.com/nutriplan/nutriplan/internal/shared/utils"
)

type PlanHandler struct {
	createPlanUC    createPlanUseCase
	updatePlanUC    updatePlanUseCase
	getPlanUC       getPlanUseCase
	listPlansUC     listPlansUseCase
	setPlanStatusUC setPlanStatusUseCase
	deletePlanUC    deletePlanUseCase
	logger          logger.Interface
}

func NewPlanHandler(
	createPlanUC createPlanUseCase,
	updatePlanUC updatePlanUseCase,
	getPlanUC getPlanUseCase,
	listPlansUC listPlansUseCase,
	setPlanStatusUC setPlanStatusUseCase,
	deletePlanUC deletePlanUseCase,
	logger logger.Interface,
) *PlanHandler {
	return &PlanHandler{
		createPlanUC:    createPlanUC,
		updatePlanUC:    updatePlanUC,
		getPlanUC:       getPlanUC,
		listPlansUC:     listPlansUC,
		setPlanStatusUC: setPlanStatusUC,
		deletePlanUC:    deletePlanUC,
		logger:          logger,
	}
}

// PlanRequest is the body of create and update. Price accepts a JSON number
// or a decimal string; an omitted nutrition_plan_limit means unlimited.
type PlanRequest struct {
	Name               string          `json:"name" binding:"required,max=100"`
	Description        string          `json:"description" binding:"max=10000"`
	Features           []string        `json:"features" binding:"max=50,dive,max=200"`
	Price              decimal.Decimal `json:"price" swaggertype:"string" example:"9.99"`
	NutritionPlanLimit *int            `json:"nutrition_plan_limit" binding:"omitempty,min=0"`
}

// CreatePlan creates a catalog plan
// @Summary Create plan
// @Tags Plans
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body PlanRequest true "Plan"
// @Success 201 {object} utils.APIResponse{data=PlanResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Router /plans [post]
func (h *PlanHandler) CreatePlan(c *gin.Context) {
	var req PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create plan", "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.createPlanUC.Execute(c.Request.Context(), planusecases.CreatePlanCommand{
		Name:               req.Name,
		Description:        req.Description,
		Features:           req.Features,
		Price:              req.Price,
		NutritionPlanLimit: req.NutritionPlanLimit,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Plan created successfully")
}

// UpdatePlan replaces a plan's editable fields
// @Summary Update plan
// @Tags Plans
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Plan ID"
// @Param request body PlanRequest true "Plan"
// @Success 200 {object} utils.APIResponse{data=PlanResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /plans/{id} [put]
func (h *PlanHandler) UpdatePlan(c *gin.Context) {
	planID, err := utils.ParseIDParam(c, "id", "plan")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update plan", "plan_id", planID, "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.updatePlanUC.Execute(c.Request.Context(), planusecases.UpdatePlanCommand{
		PlanID:             planID,
		Name:               req.Name,
		Description:        req.Description,
		Features:           req.Features,
		Price:              req.Price,
		NutritionPlanLimit: req.NutritionPlanLimit,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Plan updated successfully", result)
}

// GetPlan returns one plan
// @Summary Get plan
// @Tags Plans
// @Produce json
// @Param id path int true "Plan ID"
// @Success 200 {object} utils.APIResponse{data=PlanResponse}
// @Failure 404 {object} utils.APIResponse
// @Router /plans/{id} [get]
func (h *PlanHandler) GetPlan(c *gin.Context) {
	planID, err := utils.ParseIDParam(c, "id", "plan")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getPlanUC.Execute(c.Request.Context(), planID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListActivePlans returns the purchasable plans, cheapest first
// @Summary List active plans
// @Tags Plans
// @Produce json
// @Success 200 {object} utils.APIResponse{data=[]PlanResponse}
// @Router /plans [get]
func (h *PlanHandler) ListActivePlans(c *gin.Context) {
	result, err := h.listPlansUC.ListActive(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListAllPlans includes inactive plans
// @Summary List all plans
// @Tags Plans
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.APIResponse{data=[]PlanResponse}
// @Failure 403 {object} utils.APIResponse
// @Router /plans/all [get]
func (h *PlanHandler) ListAllPlans(c *gin.Context) {
	result, err := h.listPlansUC.ListAll(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ActivatePlan
// @Summary Activate plan
// @Tags Plans
// @Produce json
// @Security Bearer
// @Param id path int true "Plan ID"
// @Success 200 {object} utils.APIResponse{data=PlanResponse}
// @Failure 404 {object} utils.APIResponse
// @Router /plans/{id}/activate [patch]
func (h *PlanHandler) ActivatePlan(c *gin.Context) {
	h.setStatus(c, true)
}

// DeactivatePlan hides a plan from new subscriptions. Existing ones keep it.
// @Summary Deactivate plan
// @Tags Plans
// @Produce json
// @Security Bearer
// @Param id path int true "Plan ID"
// @Success 200 {object} utils.APIResponse{data=PlanResponse}
// @Failure 404 {object} utils.APIResponse
// @Router /plans/{id}/deactivate [patch]
func (h *PlanHandler) DeactivatePlan(c *gin.Context) {
	h.setStatus(c, false)
}

func (h *PlanHandler) setStatus(c *gin.Context, active bool) {
	planID, err := utils.ParseIDParam(c, "id", "plan")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	exec, message := h.setPlanStatusUC.Deactivate, "Plan deactivated successfully"
	if active {
		exec, message = h.setPlanStatusUC.Activate, "Plan activated successfully"
	}

	result, err := exec(c.Request.Context(), planID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, message, result)
}

// DeletePlan
// @Summary Delete plan
// @Tags Plans
// @Security Bearer
// @Param id path int true "Plan ID"
// @Success 204
// @Failure 404 {object} utils.APIResponse
// @Router /plans/{id} [delete]
func (h *PlanHandler) DeletePlan(c *gin.Context) {
	planID, err := utils.ParseIDParam(c, "id", "plan")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deletePlanUC.Execute(c.Request.Context(), planID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}
