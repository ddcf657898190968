package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codinghaytam/medical-registry-api/internal/services"
	"github.com/codinghaytam/medical-registry-api/internal/utils"
	"github.com/codinghaytam/medical-registry-api/internal/validator"
)

type ConsultationHandler struct {
	BaseHandler
	consultationService services.ConsultationService
	diagnosticService   services.DiagnosticService
}

func NewConsultationHandler(consultationService services.ConsultationService, diagnosticService services.DiagnosticService, logger utils.Logger) *ConsultationHandler {
	return &ConsultationHandler{
		BaseHandler:         NewBaseHandler(logger),
		consultationService: consultationService,
		diagnosticService:   diagnosticService,
	}
}

func (h *ConsultationHandler) ListConsultations(c *gin.Context) {
	filters := parseListFilters(c)

	consultations, total, err := h.consultationService.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, listResponse("consultations", consultations, total, filters))
}

func (h *ConsultationHandler) GetConsultation(c *gin.Context) {
	id := c.Param("id")

	consultation, err := h.consultationService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, consultation)
}

// CreateConsultation registers the intake visit together with the patient
// record it creates.
func (h *ConsultationHandler) CreateConsultation(c *gin.Context) {
	var req validator.ConsultationCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Creating consultation", "medecin_id", req.MedecinID)

	consultation, err := h.consultationService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, consultation)
}

func (h *ConsultationHandler) UpdateConsultation(c *gin.Context) {
	id := c.Param("id")

	var req validator.ConsultationUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	consultation, err := h.consultationService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, consultation)
}

func (h *ConsultationHandler) DeleteConsultation(c *gin.Context) {
	id := c.Param("id")

	if err := h.consultationService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Consultation deleted"})
}

func (h *ConsultationHandler) AddDiagnosis(c *gin.Context) {
	consultationID := c.Param("id")

	var req validator.DiagnosisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Adding diagnosis", "consultation_id", consultationID)

	diagnostic, err := h.consultationService.AddDiagnosis(c.Request.Context(), consultationID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, diagnostic)
}

func (h *ConsultationHandler) UpdateDiagnosis(c *gin.Context) {
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
