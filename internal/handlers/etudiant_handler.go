package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codinghaytam/medical-registry-api/internal/services"
	"github.com/codinghaytam/medical-registry-api/internal/utils"
	"github.com/codinghaytam/medical-registry-api/internal/validator"
)

type EtudiantHandler struct {
	BaseHandler
	etudiantService services.EtudiantService
}

func NewEtudiantHandler(etudiantService services.EtudiantService, logger utils.Logger) *EtudiantHandler {
	return &EtudiantHandler{
		BaseHandler:     NewBaseHandler(logger),
		etudiantService: etudiantService,
	}
}

func (h *EtudiantHandler) ListEtudiants(c *gin.Context) {
	filters := parseListFilters(c)

	etudiants, total, err := h.etudiantService.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, listResponse("etudiants", etudiants, total, filters))
}

func (h *EtudiantHandler) GetEtudiant(c *gin.Context) {
	id := c.Param("id")

	etudiant, err := h.etudiantService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, etudiant)
}

func (h *EtudiantHandler) CreateEtudiant(c *gin.Context) {
	var req validator.EtudiantCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Creating etudiant", "username", req.Username)

	etudiant, err := h.etudiantService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, etudiant)
}

func (h *EtudiantHandler) UpdateEtudiant(c *gin.Context) {
	id := c.Param("id")

	var req validator.EtudiantUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	etudiant, err := h.etudiantService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, etudiant)
}

func (h *EtudiantHandler) DeleteEtudiant(c *gin.Context) {
	id := c.Param("id")

	if err := h.etudiantService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Etudiant deleted"})
}
