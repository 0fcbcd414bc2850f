package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ctlfx/console/internal/view"
)

type searchRequest struct {
	Q string `json:"q"`
}

type pageRequest struct {
	Page     int `json:"page" binding:"required,min=1"`
	PageSize int `json:"pageSize" binding:"omitempty,min=1,max=100"`
}

type paymentFilterRequest struct {
	Type string `json:"type" binding:"omitempty,oneof=deposit withdrawal refund"`
}

// viewSnapshot answers a GET on a view: an idle controller loads first
// so the initial render blocks on the primary fetch, every later read
// just reports current state.
func viewSnapshot[T any](c *gin.Context, ctrl *view.Controller[T]) {
	if ctrl.Snapshot().State == view.StateIdle {
		_ = ctrl.Refresh(c.Request.Context())
	}
	c.JSON(http.StatusOK, ctrl.Snapshot())
}

// viewAccepted answers a state-changing view event. The refetch it
// triggers runs asynchronously; the browser polls the view for the
// settled result.
func viewAccepted[T any](c *gin.Context, ctrl *view.Controller[T]) {
	c.JSON(http.StatusAccepted, ctrl.Snapshot())
}

func (h HandlerSet) UsersView(c *gin.Context) {
	vs, ok := h.viewSet(c)
	if !ok {
		return
	}
	viewSnapshot(c, vs.Users)
}

func (h HandlerSet) UsersSearch(c *gin.Context) {
	vs, ok := h.viewSet(c)
	if !ok {
		return
	}
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	vs.Users.SetSearch(req.Q)
	viewAccepted(c, vs.Users)
}

func (h HandlerSet) UsersPage(c *gin.Context) {
	vs, ok := h.viewSet(c)
	if !ok {
		return
	}
	var req pageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	vs.Users.SetPage(req.Page, req.PageSize)
	viewAccepted(c, vs.Users)
}

func (h HandlerSet) PaymentsView(c *gin.Context) {
	vs, ok := h.viewSet(c)
	if !ok {
		return
	}
	viewSnapshot(c, vs.Payments)
}

func (h HandlerSet) PaymentsSearch(c *gin.Context) {
	vs, ok := h.viewSet(c)
	if !ok {
		return
	}
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	vs.Payments.SetSearch(req.Q)
	viewAccepted(c, vs.Payments)
}

func (h HandlerSet) PaymentsPage(c *gin.Context) {
	vs, ok := h.viewSet(c)
	if !ok {
		return
	}
	var req pageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	vs.Payments.SetPage(req.Page, req.PageSize)
	viewAccepted(c, vs.Payments)
}

func (h HandlerSet) PaymentsFilter(c *gin.Context) {
	vs, ok := h.viewSet(c)
	if !ok {
		return
	}
	var req paymentFilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	vs.Payments.SetFilter("type", req.Type)
	viewAccepted(c, vs.Payments)
}

func (h HandlerSet) OtpsView(c *gin.Context) {
	vs, ok := h.viewSet(c)
	if !ok {
		return
	}
	viewSnapshot(c, vs.Otps)
}

func (h HandlerSet) OtpsSearch(c *gin.Context) {
	vs, ok := h.viewSet(c)
	if !ok {
		return
	}
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	vs.Otps.SetSearch(req.Q)
	viewAccepted(c, vs.Otps)
}

func (h HandlerSet) OtpsPage(c *gin.Context) {
	vs, ok := h.viewSet(c)
	if !ok {
		return
	}
	var req pageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	vs.Otps.SetPage(req.Page, req.PageSize)
	viewAccepted(c, vs.Otps)
}

func (h HandlerSet) UserPaymentsView(c *gin.Context) {
	vs, ok := h.viewSet(c)
	if !ok {
		return
	}
	userID, ok := pathID(c)
	if !ok {
		return
	}
	viewSnapshot(c, vs.UserPayments(userID))
}

func (h HandlerSet) UserPicker(c *gin.Context) {
	vs, ok := h.viewSet(c)
	if !ok {
		return
	}
	if vs.UserPicker.Snapshot().Page == 0 {
		_ = vs.UserPicker.Load(c.Request.Context())
	}
	c.JSON(http.StatusOK, vs.UserPicker.Snapshot())
}

func (h HandlerSet) UserPickerSearch(c *gin.Context) {
	vs, ok := h.viewSet(c)
	if !ok {
		return
	}
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	vs.UserPicker.SetSearch(req.Q)
	c.JSON(http.StatusAccepted, vs.UserPicker.Snapshot())
}

func (h HandlerSet) UserPickerMore(c *gin.Context) {
	vs, ok := h.viewSet(c)
	if !ok {
		return
	}
	_ = vs.UserPicker.LoadMore(c.Request.Context())
	c.JSON(http.StatusOK, vs.UserPicker.Snapshot())
}
