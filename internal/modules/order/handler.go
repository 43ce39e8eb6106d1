package order

import (
	"net/http"
	"strconv"

	"servicemarket/internal/domain"
	"servicemarket/internal/middleware"
	"servicemarket/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	protected.GET("/orders", h.List)
	protected.POST("/orders", middleware.RequireRole(string(domain.RoleCustomer)), h.Create)
	protected.GET("/orders/:id", h.Get)
	protected.PATCH("/orders/:id", h.UpdateStatus)
	protected.DELETE("/orders/:id", middleware.StaffOnly(), h.Delete)
	protected.GET("/order-count/:business_user_id", h.CountInProgress)
	protected.GET("/completed-order-count/:business_user_id", h.CountCompleted)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	o, err := h.svc.Create(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		if err == ErrDetailNotFound {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Offer detail not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		return
	}

	response.Success(c, http.StatusCreated, o)
}

func (h *Handler) List(c *gin.Context) {
	orders, err := h.svc.List(c.Request.Context(), c.GetInt64("user_id"), c.GetBool("is_staff"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		return
	}
	response.Success(c, http.StatusOK, orders)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID")
		return
	}

	o, err := h.svc.Get(c.Request.Context(), id, c.GetInt64("user_id"), c.GetBool("is_staff"))
	if err != nil {
		switch err {
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Order not found")
		case ErrForbidden:
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not a participant of this order")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		}
		return
	}

	response.Success(c, http.StatusOK, o)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	o, err := h.svc.UpdateStatus(c.Request.Context(), id, c.GetInt64("user_id"), req)
	if err != nil {
		switch err {
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Order not found")
		case ErrNotBusinessSide:
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Only the business participant can change the status")
		case ErrInvalidStatus:
			response.Error(c, http.StatusBadRequest, "INVALID_STATUS", err.Error())
		case ErrInvalidTransition:
			response.Error(c, http.StatusConflict, "INVALID_TRANSITION", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		}
		return
	}

	response.Success(c, http.StatusOK, o)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID")
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		if err == ErrNotFound {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Order not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) CountInProgress(c *gin.Context) {
	h.count(c, domain.OrderInProgress)
}

func (h *Handler) CountCompleted(c *gin.Context) {
	h.count(c, domain.OrderCompleted)
}

func (h *Handler) count(c *gin.Context, status domain.OrderStatus) {
	businessUserID, err := strconv.ParseInt(c.Param("business_user_id"), 10, 64)
	if err != nil || businessUserID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid business user ID")
		return
	}

	count, err := h.svc.CountByStatus(c.Request.Context(), businessUserID, status)
	if err != nil {
		if err == ErrBusinessUserNotFound {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Business user not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		return
	}

	if status == domain.OrderCompleted {
		response.Success(c, http.StatusOK, CompletedCountResponse{CompletedOrderCount: count})
		return
	}
	response.Success(c, http.StatusOK, CountResponse{OrderCount: count})
}
