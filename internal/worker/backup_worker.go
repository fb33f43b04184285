package worker

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/eniac-club/regdesk/internal/csvcodec"
	"github.com/eniac-club/regdesk/internal/service"
	"github.com/rs/zerolog"
)

// BackupWorker periodically snapshots the registration list to a dated CSV
// file on local disk. It is the unattended counterpart of the admin panel's
// manual download: even if the Drive sync is misconfigured, a day's
// registrations survive on the host.
type BackupWorker struct {
	repo     service.RegistrationStore
	dir      string
	interval time.Duration
	log      zerolog.Logger
}

// NewBackupWorker creates a BackupWorker writing snapshots into dir.
func NewBackupWorker(repo service.RegistrationStore, dir string, interval time.Duration, log zerolog.Logger) *BackupWorker {
	return &BackupWorker{
		repo:     repo,
		dir:      dir,
		interval: interval,
		log:      log.With().Str("component", "backup_worker").Logger(),
	}
}

// Start begins the snapshot loop. Call in a goroutine. A final snapshot is
// written on shutdown so the freshest state is never older than the last
// registration.
func (w *BackupWorker) Start(ctx context.Context) {
	w.log.Info().Dur("interval", w.interval).Msg("Worker started")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.snapshot()
			w.log.Info().Msg("Worker stopped")
			return
		case <-ticker.C:
			w.snapshot()
		}
	}
}

// snapshot writes the current registration list as a dated CSV. An empty
// store writes nothing — an empty file would not even carry a header.
func (w *BackupWorker) snapshot() {
	registrations := w.repo.GetAll()
	if len(registrations) == 0 {
		return
	}

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		w.log.Error().Err(err).Msg("Create backup dir failed")
		return
	}

	path := filepath.Join(w.dir, csvcodec.BackupFilename(time.Now()))
	data := csvcodec.WithBOM(csvcodec.Generate(registrations))

	if err := os.WriteFile(path, data, 0o644); err != nil {
		w.log.Error().Err(err).Str("path", path).Msg("Write backup failed")
		return
	}

	w.log.Debug().Str("path", path).Int("records", len(registrations)).Msg("Backup snapshot written")
}
