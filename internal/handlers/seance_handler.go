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

type SeanceHandler struct {
	BaseHandler
	seanceService services.SeanceService
}

func NewSeanceHandler(seanceService services.SeanceService, logger utils.Logger) *SeanceHandler {
	return &SeanceHandler{
		BaseHandler:   NewBaseHandler(logger),
		seanceService: seanceService,
	}
}

func (h *SeanceHandler) ListSeances(c *gin.Context) {
	filters := h.parseSeanceFilters(c)

	seances, total, err := h.seanceService.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	page := (filters.Offset / max(filters.Limit, 1)) + 1
	c.JSON(http.StatusOK, gin.H{
		"seances": seances,
		"total":   total,
		"page":    page,
		"size":    filters.Limit,
	})
}

func (h *SeanceHandler) GetSeance(c *gin.Context) {
	id := c.Param("id")

	seance, err := h.seanceService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, seance)
}

func (h *SeanceHandler) CreateSeance(c *gin.Context) {
	var req validator.SeanceCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Creating seance", "patient_id", req.PatientID, "type", req.Type)

	seance, err := h.seanceService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, seance)
}

func (h *SeanceHandler) UpdateSeance(c *gin.Context) {
	id := c.Param("id")

	var req validator.SeanceUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	seance, err := h.seanceService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, seance)
}

func (h *SeanceHandler) DeleteSeance(c *gin.Context) {
	id := c.Param("id")

	if err := h.seanceService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Seance deleted"})
}

// ===== HELPER METHODS =====

func (h *SeanceHandler) parseSeanceFilters(c *gin.Context) repositories.SeanceFilters {
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

	filters := repositories.SeanceFilters{
		Limit:     size,
		Offset:    (page - 1) * size,
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}

	if typeStr := c.Query("type"); typeStr != "" {
		if seanceType := models.SeanceType(typeStr); seanceType.Valid() {
			filters.Type = &seanceType
		}
	}
	if patientID := c.Query("patient_id"); patientID != "" {
		filters.PatientID = &patientID
	}
	if medecinID := c.Query("medecin_id"); medecinID != "" {
		filters.MedecinID = &medecinID
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
