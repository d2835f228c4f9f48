package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	subdto "github.com/nutriplan/nutriplan/internal/application/subscription/dto"
	subusecases "github.com/nutriplan/nutriplan/internal/application/subscription/usecases"
	"github.com/nutriplan/nutriplan/internal/shared/logger"
	"github.com/nutriplan/nutriplan/internal/shared/utils"
)

type SubscriptionHandler struct {
	createUC       createSubscriptionUseCase
	getUC          getSubscriptionUseCase
	listUC         listSubscriptionsUseCase
	approveUC      approveSubscriptionUseCase
	rejectUC       rejectSubscriptionUseCase
	cancelUC       cancelSubscriptionUseCase
	updateStatusUC updateSubscriptionStatusUseCase
	countActiveUC  countActiveSubscriptionsUseCase
	logger         logger.Interface
}

func NewSubscriptionHandler(
	createUC createSubscriptionUseCase,
	getUC getSubscriptionUseCase,
	listUC listSubscriptionsUseCase,
	approveUC approveSubscriptionUseCase,
	rejectUC rejectSubscriptionUseCase,
	cancelUC cancelSubscriptionUseCase,
	updateStatusUC updateSubscriptionStatusUseCase,
	countActiveUC countActiveSubscriptionsUseCase,
	logger logger.Interface,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		createUC:       createUC,
		getUC:          getUC,
		listUC:         listUC,
		approveUC:      approveUC,
		rejectUC:       rejectUC,
		cancelUC:       cancelUC,
		updateStatusUC: updateStatusUC,
		countActiveUC:  countActiveUC,
		logger:         logger,
	}
}

type CreateSubscriptionRequest struct {
	PlanID uint `json:"plan_id" binding:"required,min=1"`
}

type UpdateSubscriptionStatusRequest struct {
	Status string `json:"status" binding:"required" example:"APPROVED"`
}

// CreateSubscription requests a plan for the caller. The subscription starts
// PENDING until an admin approves it.
// @Summary Create subscription
// @Tags Subscriptions
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body CreateSubscriptionRequest true "Plan to subscribe to"
// @Success 201 {object} utils.APIResponse{data=SubscriptionResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /subscriptions [post]
func (h *SubscriptionHandler) CreateSubscription(c *gin.Context) {
	who, err := currentCaller(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create subscription", "user_id", who.UserID, "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.createUC.Execute(c.Request.Context(), subusecases.CreateSubscriptionCommand{
		UserID: who.UserID,
		PlanID: req.PlanID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Subscription created successfully")
}

// GetSubscription
// @Summary Get subscription
// @Description Admins can read any subscription; other callers only their own.
// @Tags Subscriptions
// @Produce json
// @Security Bearer
// @Param id path int true "Subscription ID"
// @Success 200 {object} utils.APIResponse{data=SubscriptionResponse}
// @Failure 404 {object} utils.APIResponse
// @Router /subscriptions/{id} [get]
func (h *SubscriptionHandler) GetSubscription(c *gin.Context) {
	who, err := currentCaller(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	subscriptionID, err := utils.ParseIDParam(c, "id", "subscription")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getUC.Execute(c.Request.Context(), subusecases.GetSubscriptionQuery{
		SubscriptionID: subscriptionID,
		CallerID:       who.UserID,
		CallerIsAdmin:  who.IsAdmin(),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListMySubscriptions
// @Summary List my subscriptions
// @Tags Subscriptions
// @Produce json
// @Security Bearer
// @Param page query int false "Page" default(1)
// @Param page_size query int false "Page size; omit page and page_size, or pass 0, for every row"
// @Success 200 {object} utils.APIResponse{data=utils.ListResponse{items=[]SubscriptionResponse}}
// @Router /subscriptions [get]
func (h *SubscriptionHandler) ListMySubscriptions(c *gin.Context) {
	who, err := currentCaller(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	p := utils.ParsePagination(c)
	result, err := h.listUC.ListByUser(c.Request.Context(), who.UserID, p.Page, p.PageSize)
	h.respondList(c, result, err)
}

// ListAllSubscriptions
// @Summary List all subscriptions
// @Tags Subscriptions
// @Produce json
// @Security Bearer
// @Param page query int false "Page" default(1)
// @Param page_size query int false "Page size; omit page and page_size, or pass 0, for every row"
// @Success 200 {object} utils.APIResponse{data=utils.ListResponse{items=[]SubscriptionResponse}}
// @Failure 403 {object} utils.APIResponse
// @Router /subscriptions/all [get]
func (h *SubscriptionHandler) ListAllSubscriptions(c *gin.Context) {
	p := utils.ParsePagination(c)
	result, err := h.listUC.ListAll(c.Request.Context(), p.Page, p.PageSize)
	h.respondList(c, result, err)
}

// ListPendingSubscriptions is the approval queue.
// @Summary List pending subscriptions
// @Tags Subscriptions
// @Produce json
// @Security Bearer
// @Param page query int false "Page" default(1)
// @Param page_size query int false "Page size; omit page and page_size, or pass 0, for every row"
// @Success 200 {object} utils.APIResponse{data=utils.ListResponse{items=[]SubscriptionResponse}}
// @Failure 403 {object} utils.APIResponse
// @Router /subscriptions/pending [get]
func (h *SubscriptionHandler) ListPendingSubscriptions(c *gin.Context) {
	p := utils.ParsePagination(c)
	result, err := h.listUC.ListPending(c.Request.Context(), p.Page, p.PageSize)
	h.respondList(c, result, err)
}

// ListSubscriptionsByStatus
// @Summary List subscriptions by status
// @Tags Subscriptions
// @Produce json
// @Security Bearer
// @Param status path string true "PENDING, APPROVED, REJECTED or CANCELLED"
// @Param page query int false "Page" default(1)
// @Param page_size query int false "Page size; omit page and page_size, or pass 0, for every row"
// @Success 200 {object} utils.APIResponse{data=utils.ListResponse{items=[]SubscriptionResponse}}
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Router /subscriptions/status/{status} [get]
func (h *SubscriptionHandler) ListSubscriptionsByStatus(c *gin.Context) {
	p := utils.ParsePagination(c)
	result, err := h.listUC.ListByStatus(c.Request.Context(), c.Param("status"), p.Page, p.PageSize)
	h.respondList(c, result, err)
}

func (h *SubscriptionHandler) respondList(c *gin.Context, result *subdto.ListSubscriptionsResult, err error) {
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.ListSuccessResponse(c, result.Items, result.Total, result.Page, result.PageSize)
}

// ApproveSubscription approves a PENDING subscription and cancels the
// owner's previously approved one.
// @Summary Approve subscription
// @Tags Subscriptions
// @Produce json
// @Security Bearer
// @Param id path int true "Subscription ID"
// @Success 200 {object} utils.APIResponse{data=SubscriptionResponse}
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /subscriptions/{id}/approve [patch]
func (h *SubscriptionHandler) ApproveSubscription(c *gin.Context) {
	who, subscriptionID, ok := h.callerAndID(c)
	if !ok {
		return
	}

	result, err := h.approveUC.Execute(c.Request.Context(), subusecases.ApproveSubscriptionCommand{
		SubscriptionID: subscriptionID,
		AdminUserID:    who.UserID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Subscription approved successfully", result)
}

// RejectSubscription
// @Summary Reject subscription
// @Tags Subscriptions
// @Produce json
// @Security Bearer
// @Param id path int true "Subscription ID"
// @Success 200 {object} utils.APIResponse{data=SubscriptionResponse}
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /subscriptions/{id}/reject [patch]
func (h *SubscriptionHandler) RejectSubscription(c *gin.Context) {
	who, subscriptionID, ok := h.callerAndID(c)
	if !ok {
		return
	}

	result, err := h.rejectUC.Execute(c.Request.Context(), subusecases.RejectSubscriptionCommand{
		SubscriptionID: subscriptionID,
		AdminUserID:    who.UserID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Subscription rejected successfully", result)
}

// CancelSubscription cancels an APPROVED subscription. Owners cancel their
// own; admins may cancel any.
// @Summary Cancel subscription
// @Tags Subscriptions
// @Produce json
// @Security Bearer
// @Param id path int true "Subscription ID"
// @Success 200 {object} utils.APIResponse{data=SubscriptionResponse}
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /subscriptions/{id}/cancel [patch]
func (h *SubscriptionHandler) CancelSubscription(c *gin.Context) {
	who, subscriptionID, ok := h.callerAndID(c)
	if !ok {
		return
	}

	result, err := h.cancelUC.Execute(c.Request.Context(), subusecases.CancelSubscriptionCommand{
		SubscriptionID:     subscriptionID,
		RequestingUserID:   who.UserID,
		SkipOwnershipCheck: who.IsAdmin(),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Subscription cancelled successfully", result)
}

// UpdateSubscriptionStatus moves a subscription to APPROVED, REJECTED or
// CANCELLED. Unlike the dedicated routes, a transition that is not allowed
// from the current status is a 400.
// @Summary Update subscription status
// @Tags Subscriptions
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Subscription ID"
// @Param request body UpdateSubscriptionStatusRequest true "Target status"
// @Success 200 {object} utils.APIResponse{data=SubscriptionResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /subscriptions/{id}/status [patch]
func (h *SubscriptionHandler) UpdateSubscriptionStatus(c *gin.Context) {
	who, subscriptionID, ok := h.callerAndID(c)
	if !ok {
		return
	}

	var req UpdateSubscriptionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update subscription status",
			"subscription_id", subscriptionID,
			"error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.updateStatusUC.Execute(c.Request.Context(), subusecases.UpdateSubscriptionStatusCommand{
		SubscriptionID: subscriptionID,
		AdminUserID:    who.UserID,
		Status:         req.Status,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Subscription status updated successfully", result)
}

// CountActiveSubscriptions returns how many APPROVED subscriptions the
// caller has: 0 or 1.
// @Summary Count my active subscriptions
// @Tags Subscriptions
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.APIResponse{data=int}
// @Router /subscriptions/count/active [get]
func (h *SubscriptionHandler) CountActiveSubscriptions(c *gin.Context) {
	who, err := currentCaller(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	count, err := h.countActiveUC.Execute(c.Request.Context(), who.UserID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", count)
}

func (h *SubscriptionHandler) callerAndID(c *gin.Context) (caller, uint, bool) {
	who, err := currentCaller(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return caller{}, 0, false
	}

	subscriptionID, err := utils.ParseIDParam(c, "id", "subscription")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return caller{}, 0, false
	}
	return who, subscriptionID, true
}
