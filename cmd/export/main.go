// Command export is the operator's offline backup tool: it verifies the
// admin access code, writes a dated CSV snapshot of the registration store
// to disk, and optionally uploads it to the configured Drive folder.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"github.com/eniac-club/regdesk/internal/config"
	"github.com/eniac-club/regdesk/internal/csvcodec"
	"github.com/eniac-club/regdesk/internal/drive"
	"github.com/eniac-club/regdesk/internal/logger"
	"github.com/eniac-club/regdesk/internal/service"
	"github.com/eniac-club/regdesk/internal/store"
	"golang.org/x/term"
)

func main() {
	outDir := flag.String("out", ".", "directory to write the CSV backup into")
	upload := flag.Bool("upload", false, "also upload the backup to the configured Drive folder")
	flag.Parse()

	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	// ─── Access Code Gate ──────────────────────────────────────────────
	fmt.Print("Enter access code: ")
	code, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read access code")
	}

	verifier := service.VerifierFromConfig(cfg)
	if !verifier.Verify(string(code)) {
		fmt.Println("ACCESS DENIED: Invalid credentials")
		os.Exit(1)
	}

	// ─── Read Store ────────────────────────────────────────────────────
	repo := store.NewRegistrationRepository(store.NewFile(cfg.StorePath), cfg.StorageKey, log)
	registrations := repo.GetAll()
	if len(registrations) == 0 {
		fmt.Println("No registrations found to download.")
		os.Exit(1)
	}

	// ─── Write Backup ──────────────────────────────────────────────────
	csv := csvcodec.Generate(registrations)
	filename := csvcodec.BackupFilename(time.Now())
	path := filepath.Join(*outDir, filename)

	if err := os.WriteFile(path, csvcodec.WithBOM(csv), 0o644); err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("Failed to write backup")
	}
	fmt.Printf("Wrote %d records to %s\n", len(registrations), path)

	// ─── Optional Drive Upload ─────────────────────────────────────────
	if *upload {
		client := drive.NewClient(cfg.AppsScriptURL, cfg.DriveFolderID, log)
		result, err := client.Upload(context.Background(), csv, filename)
		if err != nil {
			log.Fatal().Err(err).Msg("Drive upload failed")
		}
		fmt.Printf("Uploaded to Drive, file ID: %s\n", result.FileID)
	}
}
