package handler

import (
	"errors"
	"net/http"

	"github.com/eniac-club/regdesk/internal/model"
	"github.com/eniac-club/regdesk/internal/response"
	"github.com/eniac-club/regdesk/internal/service"
	"github.com/eniac-club/regdesk/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RegistrationHandler exposes the public registration pipeline.
type RegistrationHandler struct {
	registrationService *service.RegistrationService
	log                 zerolog.Logger
}

func NewRegistrationHandler(registrationService *service.RegistrationService, log zerolog.Logger) *RegistrationHandler {
	return &RegistrationHandler{
		registrationService: registrationService,
		log:                 log.With().Str("component", "registration_handler").Logger(),
	}
}

// Submit godoc
// POST /api/v1/registrations
func (h *RegistrationHandler) Submit(c *gin.Context) {
	var data model.FormData
	if err := c.ShouldBindJSON(&data); err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	result, err := h.registrationService.Submit(c.Request.Context(), data)
	if err != nil {
		var ve *service.ValidationError
		switch {
		case errors.As(err, &ve):
			response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, ve.Fields)
		case errors.Is(err, store.ErrDuplicateEntry):
			response.Fail(c, http.StatusConflict, response.ErrDuplicateEntry)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrStorageFailure)
		}
		return
	}

	body := gin.H{
		"registration": result.Registration,
		"synced":       result.Synced,
	}
	if !result.Synced {
		body["sync_error"] = result.SyncError
	}
	response.Success(c, http.StatusCreated, body)
}

// PhonePreview godoc
// GET /api/v1/registrations/phone-preview?input=0612345678
// Returns the canonical rendering of a raw phone input so the form can echo
// it back while the user types.
func (h *RegistrationHandler) PhonePreview(c *gin.Context) {
	input := c.Query("input")
	response.Success(c, http.StatusOK, gin.H{
		"formatted": h.registrationService.FormatPhone(input),
	})
}

// majorEntry pairs a program code with the years open for registration.
type majorEntry struct {
	Code  string `json:"code"`
	Years []int  `json:"years"`
}

// Majors godoc
// GET /api/v1/majors
// Serves the static major→years table the form uses to repopulate the year
// select when the major changes.
func (h *RegistrationHandler) Majors(c *gin.Context) {
	majors := make([]majorEntry, 0, len(model.MajorCodes))
	for _, code := range model.MajorCodes {
		majors = append(majors, majorEntry{Code: code, Years: model.YearsFor(code)})
	}
	response.Success(c, http.StatusOK, gin.H{"majors": majors})
}
