package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/retailpos/backend/internal/application/pos"
)

// SessionHandler handles POS session endpoints
type SessionHandler struct {
	BaseHandler
	sessionService *pos.SessionService
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(sessionService *pos.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// Open handles POST /api/v1/pos/sessions
func (h *SessionHandler) Open(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req pos.OpenSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid session request: "+err.Error())
		return
	}

	session, err := h.sessionService.Open(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, session)
}

// Current handles GET /api/v1/pos/sessions/current
func (h *SessionHandler) Current(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	session, err := h.sessionService.Current(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, session)
}

// Close handles POST /api/v1/pos/sessions/:id/close
func (h *SessionHandler) Close(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid session ID")
		return
	}

	var req pos.CloseSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid close request: "+err.Error())
		return
	}

	session, err := h.sessionService.Close(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, session)
}

// Get handles GET /api/v1/pos/sessions/:id
func (h *SessionHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid session ID")
		return
	}

	session, err := h.sessionService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, session)
}

// List handles GET /api/v1/pos/sessions
func (h *SessionHandler) List(c *gin.Context) {
	var filter pos.SessionListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid filter: "+err.Error())
		return
	}

	sessions, total, err := h.sessionService.List(c.Request.Context(), filter)
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
	h.SuccessWithMeta(c, sessions, total, page, pageSize)
}
