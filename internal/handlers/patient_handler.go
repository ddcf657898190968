package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/codinghaytam/medical-registry-api/internal/models"
	"github.com/codinghaytam/medical-registry-api/internal/repositories"
	"github.com/codinghaytam/medical-registry-api/internal/services"
	"github.com/codinghaytam/medical-registry-api/internal/utils"
	"github.com/codinghaytam/medical-registry-api/internal/validator"
)

type PatientHandler struct {
	BaseHandler
	patientService services.PatientService
	actionService  services.ActionService
}

func NewPatientHandler(patientService services.PatientService, actionService services.ActionService, logger utils.Logger) *PatientHandler {
	return &PatientHandler{
		BaseHandler:    NewBaseHandler(logger),
		patientService: patientService,
		actionService:  actionService,
	}
}

func (h *PatientHandler) ListPatients(c *gin.Context) {
	filters := h.parsePatientFilters(c)

	patients, total, err := h.patientService.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	page := (filters.Offset / max(filters.Limit, 1)) + 1
	c.JSON(http.StatusOK, gin.H{
		"patients": patients,
		"total":    total,
		"page":     page,
		"size":     filters.Limit,
	})
}

func (h *PatientHandler) GetPatient(c *gin.Context) {
	id := c.Param("id")

	patient, err := h.patientService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, patient)
}

func (h *PatientHandler) CreatePatient(c *gin.Context) {
	var req validator.PatientCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Creating patient", "numero_de_dossier", req.NumeroDeDossier)

	patient, err := h.patientService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, patient)
}

func (h *PatientHandler) UpdatePatient(c *gin.Context) {
	id := c.Param("id")

	var req validator.PatientUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	patient, err := h.patientService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, patient)
}

func (h *PatientHandler) DeletePatient(c *gin.Context) {
	id := c.Param("id")

	if err := h.patientService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Patient deleted"})
}

func (h *PatientHandler) GetPatientActions(c *gin.Context) {
	id := c.Param("id")

	actions, err := h.patientService.GetActions(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"actions": actions})
}

// TransferParoOrtho moves a patient from periodontics to orthodontics.
func (h *PatientHandler) TransferParoOrtho(c *gin.Context) {
	h.requestTransfer(c, models.ActionTransferOrtho)
}

// TransferOrthoParo moves a patient from orthodontics back to periodontics.
func (h *PatientHandler) TransferOrthoParo(c *gin.Context) {
	h.requestTransfer(c, models.ActionTransferParo)
}

func (h *PatientHandler) requestTransfer(c *gin.Context, transferType models.ActionType) {
	patientID := c.Param("id")

	var req validator.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Requesting transfer", "patient_id", patientID, "type", transferType)

	action, err := h.actionService.RequestTransfer(c.Request.Context(), patientID, req.MedecinID, transferType)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, action)
}

// ValidateTransfer confirms whichever pending transfer the action records.
func (h *PatientHandler) ValidateTransfer(c *gin.Context) {
	actionID := c.Param("actionId")

	action, err := h.actionService.GetByID(c.Request.Context(), actionID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	validated, err := h.actionService.ValidateTransfer(c.Request.Context(), actionID, action.Type)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, validated)
}

// ===== HELPER METHODS =====

func (h *PatientHandler) parsePatientFilters(c *gin.Context) repositories.PatientFilters {
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

	filters := repositories.PatientFilters{
		Limit:     size,
		Offset:    (page - 1) * size,
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}

	if search := c.Query("q"); search != "" {
		filters.Search = &search
	}
	if stateStr := c.Query("state"); stateStr != "" {
		if state := models.Profession(stateStr); state.Valid() {
			filters.State = &state
		}
	}
	if fromStr := c.Query("date_from"); fromStr != "" {
		if from, err := time.Parse(time.RFC3339, fromStr); err == nil {
			filters.DateFrom = &from
		}
	}
	if toStr := c.Query("date_to"); toStr != "" {
		if to, err := time.Parse(time.RFC3339, toStr); err == nil {
			filters.DateTo = &to
		}
	}

	return filters
}
