package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/retailpos/backend/internal/application/finance"
)

// DebtHandler handles customer debt endpoints
type DebtHandler struct {
	BaseHandler
	debtService *finance.DebtService
}

// NewDebtHandler creates a new DebtHandler
func NewDebtHandler(debtService *finance.DebtService) *DebtHandler {
	return &DebtHandler{debtService: debtService}
}

// Create handles POST /api/v1/debts
func (h *DebtHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req finance.CreateDebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid debt request: "+err.Error())
		return
	}

	debt, err := h.debtService.CreateFromInvoice(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, debt)
}

// Get handles GET /api/v1/debts/:id
func (h *DebtHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid debt ID")
		return
	}

	debt, err := h.debtService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, debt)
}

// List handles GET /api/v1/debts
func (h *DebtHandler) List(c *gin.Context) {
	var filter finance.DebtListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid filter: "+err.Error())
		return
	}

	debts, total, err := h.debtService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page := filter.Page
	if page == 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize == 0 {
		pageSize = 20
	}
	h.SuccessWithMeta(c, debts, total, page, pageSize)
}

// ListOverdue handles GET /api/v1/debts/overdue
func (h *DebtHandler) ListOverdue(c *gin.Context) {
	var filter finance.DebtListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid filter: "+err.Error())
		return
	}

	debts, err := h.debtService.ListOverdue(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, debts)
}

// AddPayment handles POST /api/v1/debts/:id/payments
func (h *DebtHandler) AddPayment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid debt ID")
		return
	}

	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req finance.AddDebtPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid payment request: "+err.Error())
		return
	}

	debt, err := h.debtService.AddPayment(c.Request.Context(), id, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, debt)
}

// Delete handles DELETE /api/v1/debts/:id
func (h *DebtHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid debt ID")
		return
	}

	if err := h.debtService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// CustomerSummary handles GET /api/v1/customers/:id/debt-summary
func (h *DebtHandler) CustomerSummary(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	summary, err := h.debtService.CustomerSummary(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}

// Stats handles GET /api/v1/debts/stats
func (h *DebtHandler) Stats(c *gin.Context) {
	stats, err := h.debtService.Stats(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, stats)
}
