package service

import (
	"context"
	"errors"

	"github.com/eniac-club/regdesk/internal/csvcodec"
	"github.com/eniac-club/regdesk/internal/drive"
	"github.com/eniac-club/regdesk/internal/model"
	"github.com/eniac-club/regdesk/internal/phone"
	"github.com/eniac-club/regdesk/internal/store"
	"github.com/eniac-club/regdesk/internal/validation"
	"github.com/rs/zerolog"
)

// RegistrationStore is the persistence capability the pipeline depends on.
// *store.RegistrationRepository is the production implementation.
type RegistrationStore interface {
	GetAll() []model.Registration
	Save(data model.FormData) (*model.Registration, error)
	Clear() error
	Count() int
}

// Notifier receives registration-count changes, e.g. to push them to the
// admin monitor stream.
type Notifier interface {
	NotifyCount(count int)
}

// ValidationError carries per-field messages for a submission that failed
// validation. Nothing was persisted when it is returned.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return "validation failed" }

// SubmitResult reports a completed submission. Synced is false when the
// record was saved locally but the Drive upload failed; SyncError then holds
// the operator-facing reason. The submission itself still counts as
// successful in that case — local storage is the source of truth and the
// next submission re-uploads the full dataset anyway.
type SubmitResult struct {
	Registration *model.Registration
	Synced       bool
	SyncError    string
}

// RegistrationService runs the submit pipeline:
// validate → persist → re-serialize the full dataset → upload.
type RegistrationService struct {
	repo        RegistrationStore
	uploader    drive.Uploader
	notifier    Notifier
	csvFilename string
	log         zerolog.Logger
}

// NewRegistrationService creates the pipeline service. notifier may be nil.
func NewRegistrationService(
	repo RegistrationStore,
	uploader drive.Uploader,
	notifier Notifier,
	csvFilename string,
	log zerolog.Logger,
) *RegistrationService {
	return &RegistrationService{
		repo:        repo,
		uploader:    uploader,
		notifier:    notifier,
		csvFilename: csvFilename,
		log:         log.With().Str("component", "registration_service").Logger(),
	}
}

// Submit runs one registration through the pipeline. Errors:
//   - *ValidationError: field failures, nothing persisted, no upload
//   - store.ErrDuplicateEntry: phone already registered, no write, no upload
//   - anything else: storage failure, surfaced generically
//
// Upload failures do NOT fail the submission; see SubmitResult.
func (s *RegistrationService) Submit(ctx context.Context, data model.FormData) (*SubmitResult, error) {
	if result := validation.Validate(data); !result.Valid {
		return nil, &ValidationError{Fields: result.Errors}
	}

	registration, err := s.repo.Save(data)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateEntry) {
			return nil, err
		}
		s.log.Error().Err(err).Msg("Error saving registration")
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifyCount(s.repo.Count())
	}

	result := &SubmitResult{Registration: registration, Synced: true}

	// Full-replace sync: the remote file always mirrors the complete local
	// list, so each upload ships every record, not just the new one.
	all := s.repo.GetAll()
	if _, err := s.uploader.Upload(ctx, csvcodec.Generate(all), s.csvFilename); err != nil {
		s.log.Error().Err(err).Int("records", len(all)).Msg("Drive sync failed after save")
		result.Synced = false
		result.SyncError = err.Error()
	}

	return result, nil
}

// FormatPhone returns the canonical rendering of a raw phone input. Exposed
// through the pipeline so the HTTP layer has a single service dependency.
func (s *RegistrationService) FormatPhone(input string) string {
	return phone.Format(input)
}
