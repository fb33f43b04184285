package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/eniac-club/regdesk/internal/response"
	"github.com/eniac-club/regdesk/internal/service"
	"github.com/eniac-club/regdesk/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// AdminHandler serves the operator panel endpoints behind the admin gate.
type AdminHandler struct {
	authService  *service.AuthService
	adminService *service.AdminService
	log          zerolog.Logger
}

func NewAdminHandler(authService *service.AuthService, adminService *service.AdminService, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		authService:  authService,
		adminService: adminService,
		log:          log.With().Str("component", "admin_handler").Logger(),
	}
}

type loginRequest struct {
	AccessCode string `json:"accessCode" binding:"required"`
}

// Login godoc
// POST /api/v1/admin/login
func (h *AdminHandler) Login(c *gin.Context) {
	var req loginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	token, err := h.authService.Login(req.AccessCode)
	if err != nil {
		h.log.Warn().Str("ip", c.ClientIP()).Msg("Admin login rejected")
		response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
		return
	}

	h.log.Info().Str("ip", c.ClientIP()).Msg("Admin access granted")
	response.Success(c, http.StatusOK, gin.H{"token": token})
}

// List godoc
// GET /api/v1/admin/registrations
func (h *AdminHandler) List(c *gin.Context) {
	registrations := h.adminService.List()
	response.Success(c, http.StatusOK, gin.H{
		"registrations": registrations,
		"count":         len(registrations),
	})
}

// Count godoc
// GET /api/v1/admin/registrations/count
func (h *AdminHandler) Count(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"count": h.adminService.Count()})
}

// Export godoc
// GET /api/v1/admin/registrations/export
// Streams the dated CSV backup as a file download.
func (h *AdminHandler) Export(c *gin.Context) {
	filename, data, err := h.adminService.Export(time.Now())
	if err != nil {
		if errors.Is(err, service.ErrNothingToExport) {
			response.Fail(c, http.StatusNotFound, response.ErrNothingToExport)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

type clearRequest struct {
	Confirmation string `json:"confirmation" binding:"required"`
}

// Clear godoc
// DELETE /api/v1/admin/registrations
// Destructive: wipes every stored registration. The request body must carry
// the typed confirmation literal.
func (h *AdminHandler) Clear(c *gin.Context) {
	var req clearRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.adminService.Clear(req.Confirmation); err != nil {
		if errors.Is(err, service.ErrConfirmationMismatch) {
			response.Fail(c, http.StatusBadRequest, response.ErrConfirmationMismatch)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "stored registrations wiped"})
}
