package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codinghaytam/medical-registry-api/internal/services"
	"github.com/codinghaytam/medical-registry-api/internal/utils"
	"github.com/codinghaytam/medical-registry-api/internal/validator"
)

type AdminHandler struct {
	BaseHandler
	adminService services.AdminService
	userService  services.UserService
}

func NewAdminHandler(adminService services.AdminService, userService services.UserService, logger utils.Logger) *AdminHandler {
	return &AdminHandler{
		BaseHandler:  NewBaseHandler(logger),
		adminService: adminService,
		userService:  userService,
	}
}

func (h *AdminHandler) ListAdmins(c *gin.Context) {
	filters := parseListFilters(c)

	admins, total, err := h.adminService.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, listResponse("admins", admins, total, filters))
}

func (h *AdminHandler) GetAdmin(c *gin.Context) {
	id := c.Param("id")

	admin, err := h.adminService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, admin)
}

func (h *AdminHandler) GetAdminByEmail(c *gin.Context) {
	email := c.Param("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Email is required"})
		return
	}

	user, err := h.userService.GetByEmail(c.Request.Context(), email)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *AdminHandler) CreateAdmin(c *gin.Context) {
	var req validator.UserCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Creating admin", "username", req.Username)

	admin, err := h.adminService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, admin)
}

func (h *AdminHandler) UpdateAdmin(c *gin.Context) {
	id := c.Param("id")

	var req validator.UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	admin, err := h.adminService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, admin)
}

func (h *AdminHandler) DeleteAdmin(c *gin.Context) {
	id := c.Param("id")

	if err := h.adminService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Admin deleted"})
}
