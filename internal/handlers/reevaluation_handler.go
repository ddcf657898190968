package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codinghaytam/medical-registry-api/internal/services"
	"github.com/codinghaytam/medical-registry-api/internal/utils"
	"github.com/codinghaytam/medical-registry-api/internal/validator"
)

const photoFormField = "sondage_photo"

type ReevaluationHandler struct {
	BaseHandler
	reevaluationService services.ReevaluationService
}

func NewReevaluationHandler(reevaluationService services.ReevaluationService, logger utils.Logger) *ReevaluationHandler {
	return &ReevaluationHandler{
		BaseHandler:         NewBaseHandler(logger),
		reevaluationService: reevaluationService,
	}
}

func (h *ReevaluationHandler) ListReevaluations(c *gin.Context) {
	filters := parseListFilters(c)

	reevaluations, total, err := h.reevaluationService.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, listResponse("reevaluations", reevaluations, total, filters))
}

func (h *ReevaluationHandler) GetReevaluation(c *gin.Context) {
	id := c.Param("id")

	reevaluation, err := h.reevaluationService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, reevaluation)
}

// CreateReevaluation accepts a multipart form: the numeric indices as form
// fields and the probing chart photo under "sondage_photo".
func (h *ReevaluationHandler) CreateReevaluation(c *gin.Context) {
	var req validator.ReevaluationCreateRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	photo, cleanup, err := h.photoFromForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid photo upload",
			Details: err.Error(),
		})
		return
	}
	if cleanup != nil {
		defer cleanup()
	}

	h.LogRequest(c, "Creating reevaluation", "patient_id", req.PatientID)

	reevaluation, err := h.reevaluationService.Create(c.Request.Context(), &req, photo)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, reevaluation)
}

func (h *ReevaluationHandler) UpdateReevaluation(c *gin.Context) {
	id := c.Param("id")

	var req validator.ReevaluationUpdateRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	photo, cleanup, err := h.photoFromForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid photo upload",
			Details: err.Error(),
		})
		return
	}
	if cleanup != nil {
		defer cleanup()
	}

	reevaluation, err := h.reevaluationService.Update(c.Request.Context(), id, &req, photo)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, reevaluation)
}

func (h *ReevaluationHandler) DeleteReevaluation(c *gin.Context) {
	id := c.Param("id")

	if err := h.reevaluationService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reevaluation deleted"})
}

// GetReevaluationPhoto returns a short-lived presigned URL for the probing
// chart photo rather than streaming the object through the API.
func (h *ReevaluationHandler) GetReevaluationPhoto(c *gin.Context) {
	id := c.Param("id")

	url, err := h.reevaluationService.PhotoURL(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

// photoFromForm extracts the optional photo part. A missing part returns a
// nil upload, not an error; the services decide whether the photo is required.
func (h *ReevaluationHandler) photoFromForm(c *gin.Context) (*services.PhotoUpload, func(), error) {
	file, err := c.FormFile(photoFormField)
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, nil, nil
		}
		return nil, nil, err
	}

	reader, err := file.Open()
	if err != nil {
		return nil, nil, err
	}

	upload := &services.PhotoUpload{
		Reader:      reader,
		Size:        file.Size,
		ContentType: file.Header.Get("Content-Type"),
		Filename:    file.Filename,
	}
	return upload, func() { reader.Close() }, nil
}
