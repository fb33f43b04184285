package store

import (
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/eniac-club/regdesk/internal/model"
	"github.com/rs/zerolog"
)

// ErrDuplicateEntry is returned by Save when a registration with the same
// normalized phone number already exists. Callers treat it as a distinct
// condition, not a generic storage failure.
var ErrDuplicateEntry = errors.New("duplicate entry")

// isoMillis renders timestamps the way the stored records have always carried
// them: UTC with millisecond precision.
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// RegistrationRepository persists the registration list as a single JSON
// array under one fixed key of a File store. The whole list is rewritten on
// every append; a repository-level mutex makes the read-check-append-write
// sequence atomic even across concurrent callers.
type RegistrationRepository struct {
	mu   sync.Mutex
	file *File
	key  string
	log  zerolog.Logger

	// now is swappable for tests.
	now func() time.Time
}

// NewRegistrationRepository creates a repository over file using key as the
// storage slot.
func NewRegistrationRepository(file *File, key string, log zerolog.Logger) *RegistrationRepository {
	return &RegistrationRepository{
		file: file,
		key:  key,
		log:  log.With().Str("component", "registration_repository").Logger(),
		now:  time.Now,
	}
}

// GetAll returns every stored registration in insertion order. A missing key
// yields an empty slice. A corrupt stored value also yields an empty slice:
// corruption is logged, never surfaced to the caller.
func (r *RegistrationRepository) GetAll() []model.Registration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loadAll()
}

// Save appends a new registration built from data. It fails with
// ErrDuplicateEntry when any existing record's phone number matches data's
// after whitespace normalization, and in that case writes nothing.
// ID and Timestamp are assigned here from the same instant.
func (r *RegistrationRepository) Save(data model.FormData) (*model.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	registrations := r.loadAll()

	key := normalizePhone(data.PhoneNumber)
	for _, reg := range registrations {
		if normalizePhone(reg.PhoneNumber) == key {
			return nil, ErrDuplicateEntry
		}
	}

	now := r.now()
	registration := model.Registration{
		ID:          now.UnixMilli(),
		FullName:    data.FullName,
		PhoneNumber: data.PhoneNumber,
		Email:       data.Email,
		Gender:      data.Gender,
		Major:       data.Major,
		Year:        data.Year,
		Notes:       data.Notes,
		Timestamp:   now.UTC().Format(isoMillis),
	}

	registrations = append(registrations, registration)

	raw, err := json.Marshal(registrations)
	if err != nil {
		return nil, err
	}
	if err := r.file.Set(r.key, raw); err != nil {
		return nil, err
	}

	r.log.Info().
		Int64("id", registration.ID).
		Str("major", registration.Major).
		Msg("Registration saved")
	return &registration, nil
}

// Clear deletes the storage key entirely. Idempotent.
func (r *RegistrationRepository) Clear() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.file.Delete(r.key)
}

// Count returns the number of stored registrations.
func (r *RegistrationRepository) Count() int {
	return len(r.GetAll())
}

// loadAll deserializes the stored list. Callers must hold r.mu.
func (r *RegistrationRepository) loadAll() []model.Registration {
	raw, err := r.file.Get(r.key)
	if err != nil {
		r.log.Error().Err(err).Msg("Error reading from storage")
		return []model.Registration{}
	}
	if raw == nil {
		return []model.Registration{}
	}

	var registrations []model.Registration
	if err := json.Unmarshal(raw, &registrations); err != nil {
		r.log.Error().Err(err).Msg("Corrupt registration list in storage")
		return []model.Registration{}
	}
	return registrations
}

// normalizePhone strips all whitespace from a phone number. The result is
// used only for duplicate comparison and is never stored.
func normalizePhone(phone string) string {
	return strings.Map(func(c rune) rune {
		if unicode.IsSpace(c) {
			return -1
		}
		return c
	}, phone)
}
