package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codinghaytam/medical-registry-api/internal/models"
)

// EnumHandler exposes the closed vocabularies so clients can populate
// dropdowns without hard-coding them.
type EnumHandler struct{}

func NewEnumHandler() *EnumHandler {
	return &EnumHandler{}
}

func (h *EnumHandler) ListMotifs(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"motifs": models.MotifsConsultation()})
}

func (h *EnumHandler) ListMastications(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"mastications": models.MasticationTypes()})
}

func (h *EnumHandler) ListHygieneLevels(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"hygiene": models.HygieneLevels()})
}

func (h *EnumHandler) ListSeanceTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"seance_types": models.SeanceTypes()})
}

func (h *EnumHandler) ListProfessions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"professions": models.Professions()})
}

func (h *EnumHandler) ListRoles(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"roles": models.Roles()})
}
