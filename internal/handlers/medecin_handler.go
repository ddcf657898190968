package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/codinghaytam/medical-registry-api/internal/models"
	"github.com/codinghaytam/medical-registry-api/internal/repositories"
	"github.com/codinghaytam/medical-registry-api/internal/services"
	"github.com/codinghaytam/medical-registry-api/internal/utils"
	"github.com/codinghaytam/medical-registry-api/internal/validator"
)

type MedecinHandler struct {
	BaseHandler
	medecinService services.MedecinService
}

func NewMedecinHandler(medecinService services.MedecinService, logger utils.Logger) *MedecinHandler {
	return &MedecinHandler{
		BaseHandler:    NewBaseHandler(logger),
		medecinService: medecinService,
	}
}

func (h *MedecinHandler) ListMedecins(c *gin.Context) {
	filters := h.parseMedecinFilters(c)

	medecins, total, err := h.medecinService.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	page := (filters.Offset / max(filters.Limit, 1)) + 1
	c.JSON(http.StatusOK, gin.H{
		"medecins": medecins,
		"total":    total,
		"page":     page,
		"size":     filters.Limit,
	})
}

func (h *MedecinHandler) GetMedecinsByProfession(c *gin.Context) {
	profession := models.Profession(c.Param("profession"))
	if !profession.Valid() {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid profession"})
		return
	}

	filters := h.parseMedecinFilters(c)
	filters.Profession = &profession

	medecins, total, err := h.medecinService.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	page := (filters.Offset / max(filters.Limit, 1)) + 1
	c.JSON(http.StatusOK, gin.H{
		"medecins": medecins,
		"total":    total,
		"page":     page,
		"size":     filters.Limit,
	})
}

func (h *MedecinHandler) GetMedecin(c *gin.Context) {
	id := c.Param("id")

	medecin, err := h.medecinService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, medecin)
}

func (h *MedecinHandler) CreateMedecin(c *gin.Context) {
	var req validator.MedecinCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Creating medecin", "username", req.Username)

	medecin, err := h.medecinService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, medecin)
}

func (h *MedecinHandler) UpdateMedecin(c *gin.Context) {
	id := c.Param("id")

	var req validator.MedecinUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	medecin, err := h.medecinService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, medecin)
}

func (h *MedecinHandler) DeleteMedecin(c *gin.Context) {
	id := c.Param("id")

	if err := h.medecinService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Medecin deleted"})
}

// ===== HELPER METHODS =====

func (h *MedecinHandler) parseMedecinFilters(c *gin.Context) repositories.MedecinFilters {
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

	filters := repositories.MedecinFilters{
		Limit:     size,
		Offset:    (page - 1) * size,
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}

	if professionStr := c.Query("profession"); professionStr != "" {
		if profession := models.Profession(professionStr); profession.Valid() {
			filters.Profession = &profession
		}
	}
	if specialisteStr := c.Query("is_specialiste"); specialisteStr != "" {
		if specialiste, err := strconv.ParseBool(specialisteStr); err == nil {
			filters.IsSpecialiste = &specialiste
		}
	}

	return filters
}
