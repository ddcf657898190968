package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codinghaytam/medical-registry-api/internal/services"
	"github.com/codinghaytam/medical-registry-api/internal/utils"
	"github.com/codinghaytam/medical-registry-api/internal/validator"
)

type DiagnosticHandler struct {
	BaseHandler
	diagnosticService services.DiagnosticService
}

func NewDiagnosticHandler(diagnosticService services.DiagnosticService, logger utils.Logger) *DiagnosticHandler {
	return &DiagnosticHandler{
		BaseHandler:       NewBaseHandler(logger),
		diagnosticService: diagnosticService,
	}
}

// ListDiagnostics requires a consultation_id query parameter; diagnostics
// are only ever read in the context of their consultation.
func (h *DiagnosticHandler) ListDiagnostics(c *gin.Context) {
	consultationID := c.Query("consultation_id")
	if consultationID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "consultation_id is required"})
		return
	}

	diagnostics, err := h.diagnosticService.GetByConsultation(c.Request.Context(), consultationID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"diagnostics": diagnostics})
}

func (h *DiagnosticHandler) GetDiagnostic(c *gin.Context) {
	id := c.Param("id")

	diagnostic, err := h.diagnosticService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, diagnostic)
}

func (h *DiagnosticHandler) CreateDiagnostic(c *gin.Context) {
	var req validator.DiagnosticCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Creating diagnostic", "consultation_id", req.ConsultationID)

	diagnostic, err := h.diagnosticService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, diagnostic)
}

func (h *DiagnosticHandler) UpdateDiagnostic(c *gin.Context) {
	id := c.Param("id")

	var req validator.DiagnosticUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	diagnostic, err := h.diagnosticService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, diagnostic)
}

func (h *DiagnosticHandler) DeleteDiagnostic(c *gin.Context) {
	id := c.Param("id")

	if err := h.diagnosticService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Diagnostic deleted"})
}
