package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codinghaytam/medical-registry-api/internal/models"
	"github.com/codinghaytam/medical-registry-api/internal/services"
	"github.com/codinghaytam/medical-registry-api/internal/utils"
	"github.com/codinghaytam/medical-registry-api/internal/validator"
)

type ActionHandler struct {
	BaseHandler
	actionService services.ActionService
}

func NewActionHandler(actionService services.ActionService, logger utils.Logger) *ActionHandler {
	return &ActionHandler{
		BaseHandler:   NewBaseHandler(logger),
		actionService: actionService,
	}
}

func (h *ActionHandler) ListActions(c *gin.Context) {
	if patientID := c.Query("patient_id"); patientID != "" {
		actions, err := h.actionService.GetByPatient(c.Request.Context(), patientID)
		if err != nil {
			h.handleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"actions": actions})
		return
	}

	filters := parseListFilters(c)

	actions, total, err := h.actionService.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, listResponse("actions", actions, total, filters))
}

func (h *ActionHandler) GetAction(c *gin.Context) {
	id := c.Param("id")

	action, err := h.actionService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, action)
}

// CreateAction opens a transfer directly from its action payload. The
// patient routes cover the common case; this exists for administrative use.
func (h *ActionHandler) CreateAction(c *gin.Context) {
	var req validator.ActionCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Creating action", "patient_id", req.PatientID, "type", req.Type)

	action, err := h.actionService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, action)
}

func (h *ActionHandler) UpdateAction(c *gin.Context) {
	id := c.Param("id")

	var req validator.ActionUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	action, err := h.actionService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, action)
}

func (h *ActionHandler) DeleteAction(c *gin.Context) {
	id := c.Param("id")

	if err := h.actionService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Action deleted"})
}

// ValidateTransferOrtho confirms a pending transfer into orthodontics.
func (h *ActionHandler) ValidateTransferOrtho(c *gin.Context) {
	h.validateTransfer(c, models.ActionTransferOrtho)
}

// ValidateTransferParo confirms a pending transfer into periodontics.
func (h *ActionHandler) ValidateTransferParo(c *gin.Context) {
	h.validateTransfer(c, models.ActionTransferParo)
}

func (h *ActionHandler) validateTransfer(c *gin.Context, expectedType models.ActionType) {
	actionID := c.Param("id")

	h.LogRequest(c, "Validating transfer", "action_id", actionID, "expected_type", expectedType)

	action, err := h.actionService.ValidateTransfer(c.Request.Context(), actionID, expectedType)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, action)
}
