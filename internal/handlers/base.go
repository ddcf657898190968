package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/codinghaytam/medical-registry-api/internal/auth"
	"github.com/codinghaytam/medical-registry-api/internal/keycloak"
	"github.com/codinghaytam/medical-registry-api/internal/repositories"
	"github.com/codinghaytam/medical-registry-api/internal/services"
	"github.com/codinghaytam/medical-registry-api/internal/storage"
	"github.com/codinghaytam/medical-registry-api/internal/utils"
	"github.com/codinghaytam/medical-registry-api/internal/validator"
)

type ErrorResponse struct {
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	utils.FromContext(c, h.logger).Info(msg, args...)
}

func (h *BaseHandler) LogError(c *gin.Context, err error, msg string, args ...any) {
	utils.FromContext(c, h.logger).Error(msg, append(args, "error", err)...)
}

// handleServiceError maps service-layer errors onto the HTTP status
// contract: 400 validation, 401 bad credentials, 404 missing, 409 conflict,
// 503 upstream outage, 500 fallback.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: validationErrors,
		})
		return
	}

	var professionError *services.SeanceProfessionError
	if errors.As(err, &professionError) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: professionError.Error(),
		})
		return
	}

	switch {
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrMedecinNotFound),
		errors.Is(err, services.ErrEtudiantNotFound),
		errors.Is(err, services.ErrPatientNotFound),
		errors.Is(err, services.ErrActionNotFound),
		errors.Is(err, services.ErrConsultationNotFound),
		errors.Is(err, services.ErrDiagnosticNotFound),
		errors.Is(err, services.ErrSeanceNotFound),
		errors.Is(err, services.ErrReevaluationNotFound),
		errors.Is(err, services.ErrNotificationNotFound),
		errors.Is(err, storage.ErrObjectNotFound),
		repositories.IsNotFoundError(err):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: err.Error()})

	case errors.Is(err, services.ErrUserExists),
		errors.Is(err, services.ErrPatientExists),
		errors.Is(err, services.ErrActionAlreadyValidated):
		c.JSON(http.StatusConflict, ErrorResponse{Message: err.Error()})

	case errors.Is(err, services.ErrActionTypeMismatch),
		errors.Is(err, services.ErrDiagnosticLimitReached),
		errors.Is(err, services.ErrDiagnosticProfessionTaken),
		errors.Is(err, services.ErrInvalidPhotoType),
		errors.Is(err, services.ErrPhotoTooLarge):
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})

	case errors.Is(err, keycloak.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Invalid credentials"})

	case errors.Is(err, keycloak.ErrProviderUnavailable),
		errors.Is(err, storage.ErrStorageUnavailable):
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Message: "Upstream service unavailable"})

	default:
		h.LogError(c, err, "Unhandled service error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "Internal server error"})
	}
}

// parseListFilters reads the shared page/size/sort query parameters.
func parseListFilters(c *gin.Context) repositories.ListFilters {
	page := 1
	size := 20

	if pageStr := c.Query("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			page = p
		}
	}
	if sizeStr := c.Query("size"); sizeStr != "" {
		if s, err := strconv.Atoi(sizeStr); err == nil && s > 0 && s <= 100 {
			size = s
		}
	}

	return repositories.ListFilters{
		Limit:     size,
		Offset:    (page - 1) * size,
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}
}

func listResponse(key string, items interface{}, total int64, filters repositories.ListFilters) gin.H {
	page := (filters.Offset / max(filters.Limit, 1)) + 1
	return gin.H{
		key:     items,
		"total": total,
		"page":  page,
		"size":  filters.Limit,
	}
}
