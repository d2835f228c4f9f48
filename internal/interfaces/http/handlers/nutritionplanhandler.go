package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	nutritionplandto "github.com/nutriplan/nutriplan/internal/application/nutritionplan/dto"
	nutritionusecases "github.com/nutriplan/nutriplan/internal/application/nutritionplan/usecases"
	"github.com/nutriplan/nutriplan/internal/shared/logger"
	"github.com/nutriplan/nutriplan/internal/shared/utils"
)

type createNutritionPlanUseCase interface {
	Execute(ctx context.Context, cmd nutritionusecases.CreateNutritionPlanCommand) (*nutritionplandto.NutritionPlanDTO, error)
}

type nutritionPlanQueries interface {
	List(ctx context.Context, userID uint) ([]*nutritionplandto.NutritionPlanDTO, error)
	Get(ctx context.Context, userID, id uint) (*nutritionplandto.NutritionPlanDTO, error)
	Delete(ctx context.Context, userID, id uint) error
}

type NutritionPlanHandler struct {
	createUC createNutritionPlanUseCase
	queries  nutritionPlanQueries
	logger   logger.Interface
}

func NewNutritionPlanHandler(
	createUC createNutritionPlanUseCase,
	queries nutritionPlanQueries,
	logger logger.Interface,
) *NutritionPlanHandler {
	return &NutritionPlanHandler{
		createUC: createUC,
		queries:  queries,
		logger:   logger,
	}
}

type CreateNutritionPlanRequest struct {
	Title         string `json:"title" binding:"required,max=200"`
	Description   string `json:"description" binding:"max=20000"`
	DailyCalories *int   `json:"daily_calories" binding:"omitempty,min=1,max=20000"`
}

// CreateNutritionPlan is gated by the caller's active plan quota.
// @Summary Create nutrition plan
// @Tags NutritionPlans
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body CreateNutritionPlanRequest true "Nutrition plan"
// @Success 201 {object} utils.APIResponse{data=NutritionPlanResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse "No active subscription or quota exceeded"
// @Router /nutrition-plans [post]
func (h *NutritionPlanHandler) CreateNutritionPlan(c *gin.Context) {
	who, err := currentCaller(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CreateNutritionPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create nutrition plan", "user_id", who.UserID, "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.createUC.Execute(c.Request.Context(), nutritionusecases.CreateNutritionPlanCommand{
		UserID:        who.UserID,
		Title:         req.Title,
		Description:   req.Description,
		DailyCalories: req.DailyCalories,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Nutrition plan created successfully")
}

// ListNutritionPlans
// @Summary List my nutrition plans
// @Tags NutritionPlans
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.APIResponse{data=[]NutritionPlanResponse}
// @Router /nutrition-plans [get]
func (h *NutritionPlanHandler) ListNutritionPlans(c *gin.Context) {
	who, err := currentCaller(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.queries.List(c.Request.Context(), who.UserID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GetNutritionPlan
// @Summary Get nutrition plan
// @Tags NutritionPlans
// @Produce json
// @Security Bearer
// @Param id path int true "Nutrition plan ID"
// @Success 200 {object} utils.APIResponse{data=NutritionPlanResponse}
// @Failure 404 {object} utils.APIResponse
// @Router /nutrition-plans/{id} [get]
func (h *NutritionPlanHandler) GetNutritionPlan(c *gin.Context) {
	who, id, ok := ownedResource(c)
	if !ok {
		return
	}

	result, err := h.queries.Get(c.Request.Context(), who.UserID, id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// DeleteNutritionPlan
// @Summary Delete nutrition plan
// @Tags NutritionPlans
// @Security Bearer
// @Param id path int true "Nutrition plan ID"
// @Success 204
// @Failure 404 {object} utils.APIResponse
// @Router /nutrition-plans/{id} [delete]
func (h *NutritionPlanHandler) DeleteNutritionPlan(c *gin.Context) {
	who, id, ok := ownedResource(c)
	if !ok {
		return
	}

	if err := h.queries.Delete(c.Request.Context(), who.UserID, id); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.NoContentResponse(c)
}

func ownedResource(c *gin.Context) (caller, uint, bool) {
	who, err := currentCaller(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return caller{}, 0, false
	}

	id, err := utils.ParseIDParam(c, "id", "nutrition plan")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return caller{}, 0, false
	}
	return who, id, true
}
