package upload

import (
	"net/http"

	"servicemarket/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for file uploads.
// Any authenticated user can upload; ownership is tracked by user_id.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Upload(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "no file provided")
		return
	}

	u, err := h.service.Upload(c.Request.Context(), userID, fileHeader)
	if err != nil {
		switch err {
		case ErrEmptyFile, ErrInvalidMimeType:
			response.Error(c, http.StatusBadRequest, "INVALID_FILE", err.Error())
		case ErrFileTooLarge:
			response.Error(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL", "upload failed")
		}
		return
	}

	response.Success(c, http.StatusCreated, u)
}

func (h *Handler) GetByID(c *gin.Context) {
	u, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if err == ErrUploadNotFound {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Upload not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		return
	}
	response.Success(c, http.StatusOK, u)
}

func (h *Handler) ListMy(c *gin.Context) {
	uploads, err := h.service.ListByUser(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		return
	}
	response.Success(c, http.StatusOK, uploads)
}

func (h *Handler) Delete(c *gin.Context) {
	err := h.service.Delete(c.Request.Context(), c.Param("id"), c.GetInt64("user_id"))
	if err != nil {
		switch err {
		case ErrUploadNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Upload not found")
		case ErrNotOwner:
			response.Error(c, http.StatusForbidden, "FORBIDDEN", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		}
		return
	}
	c.Status(http.StatusNoContent)
}
