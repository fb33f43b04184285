package service

import (
	"errors"
	"time"

	"github.com/eniac-club/regdesk/internal/csvcodec"
	"github.com/eniac-club/regdesk/internal/model"
	"github.com/rs/zerolog"
)

// ClearConfirmation is the literal an operator must type to confirm wiping
// the stored registrations.
const ClearConfirmation = "DELETE"

// Admin operation errors.
var (
	ErrConfirmationMismatch = errors.New("confirmation literal does not match")
	ErrNothingToExport      = errors.New("no registrations to export")
)

// AdminService serves the operator panel: listing, CSV export, and the
// destructive clear-all.
type AdminService struct {
	repo     RegistrationStore
	notifier Notifier
	log      zerolog.Logger
}

// NewAdminService creates an AdminService. notifier may be nil.
func NewAdminService(repo RegistrationStore, notifier Notifier, log zerolog.Logger) *AdminService {
	return &AdminService{
		repo:     repo,
		notifier: notifier,
		log:      log.With().Str("component", "admin_service").Logger(),
	}
}

// List returns every stored registration in insertion order.
func (s *AdminService) List() []model.Registration {
	return s.repo.GetAll()
}

// Count returns the number of stored registrations.
func (s *AdminService) Count() int {
	return s.repo.Count()
}

// Export produces a BOM-prefixed CSV snapshot of all registrations together
// with its dated backup filename. Fails with ErrNothingToExport when the
// store is empty (the export would not even contain a header).
func (s *AdminService) Export(now time.Time) (filename string, data []byte, err error) {
	registrations := s.repo.GetAll()
	if len(registrations) == 0 {
		return "", nil, ErrNothingToExport
	}

	csv := csvcodec.Generate(registrations)
	s.log.Info().Int("records", len(registrations)).Msg("CSV export generated")
	return csvcodec.BackupFilename(now), csvcodec.WithBOM(csv), nil
}

// Clear wipes all stored registrations. The operator must supply the typed
// ClearConfirmation literal; anything else refuses without touching the
// store. Clearing an empty store succeeds.
func (s *AdminService) Clear(confirmation string) error {
	if confirmation != ClearConfirmation {
		return ErrConfirmationMismatch
	}

	count := s.repo.Count()
	if err := s.repo.Clear(); err != nil {
		s.log.Error().Err(err).Msg("Error clearing storage")
		return err
	}

	s.log.Warn().Int("deleted", count).Msg("Stored registrations wiped")
	if s.notifier != nil {
		s.notifier.NotifyCount(0)
	}
	return nil
}
