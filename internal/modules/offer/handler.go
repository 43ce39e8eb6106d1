package offer

import (
	"errors"
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
	protected.GET("/offers", h.List)
	protected.POST("/offers", middleware.RequireRole(string(domain.RoleBusiness)), h.Create)
	protected.GET("/offers/:id", h.Retrieve)
	protected.PATCH("/offers/:id", h.Update)
	protected.DELETE("/offers/:id", h.Delete)
	protected.GET("/offerdetails/:id", h.GetDetail)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	result, err := h.svc.Create(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		var countErr *DetailCountError
		switch {
		case errors.As(err, &countErr):
			response.Error(c, http.StatusBadRequest, "INVALID_DETAILS", countErr.Error())
		case err == ErrInvalidTier || err == ErrDuplicateTier:
			response.Error(c, http.StatusBadRequest, "INVALID_DETAILS", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		}
		return
	}

	response.Success(c, http.StatusCreated, result)
}

func (h *Handler) List(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid query parameters")
		return
	}

	result, err := h.svc.List(c.Request.Context(), q)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		return
	}

	response.Success(c, http.StatusOK, result)
}

func (h *Handler) Retrieve(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid offer ID")
		return
	}

	result, err := h.svc.Retrieve(c.Request.Context(), id)
	if err != nil {
		if err == ErrNotFound {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Offer not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		return
	}

	response.Success(c, http.StatusOK, result)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid offer ID")
		return
	}

	var req UpdateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	result, err := h.svc.Update(c.Request.Context(), id, c.GetInt64("user_id"), req)
	if err != nil {
		switch err {
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Offer not found")
		case ErrForbidden:
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "You don't own this offer")
		case ErrInvalidTier, ErrMissingTier, ErrUnknownDetail:
			response.Error(c, http.StatusBadRequest, "INVALID_DETAILS", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		}
		return
	}

	response.Success(c, http.StatusOK, result)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid offer ID")
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id, c.GetInt64("user_id")); err != nil {
		switch err {
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Offer not found")
		case ErrForbidden:
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "You don't own this offer")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		}
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) GetDetail(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid detail ID")
		return
	}

	result, err := h.svc.GetDetail(c.Request.Context(), id)
	if err != nil {
		if err == ErrDetailNotFound {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Offer detail not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		return
	}

	response.Success(c, http.StatusOK, result)
}
