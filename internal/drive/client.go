// Package drive uploads CSV exports to a Google Apps Script web app acting
// as a Drive upload proxy. The endpoint is operator-controlled and opaque:
// this client owns the wire contract and the operator-facing error text, not
// the endpoint's behavior.
package drive

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
)

// Configuration preconditions, checked before any request goes out.
var (
	ErrURLNotConfigured    = errors.New("Apps Script URL not configured: set APPS_SCRIPT_URL")
	ErrFolderNotConfigured = errors.New("Drive folder ID not configured: set DRIVE_FOLDER_ID")
	ErrEmptyCSV            = errors.New("CSV content is empty")
)

// placeholderMarker matches a copy-pasted template URL that was never
// replaced with a real deployment.
const placeholderMarker = "YOUR_GOOGLE"

// uploadAction is the dispatch verb the Apps Script handler switches on.
const uploadAction = "uploadCSV"

// uploadRequest is the wire request body.
type uploadRequest struct {
	Action     string `json:"action"`
	FolderID   string `json:"folderId"`
	Filename   string `json:"filename"`
	CSVContent string `json:"csvContent"`
}

// uploadResponse is the expected response shape.
type uploadResponse struct {
	Success bool   `json:"success"`
	FileID  string `json:"fileId"`
	Error   string `json:"error"`
}

// UploadResult reports a successful upload.
type UploadResult struct {
	FileID string
}

// Uploader is the capability the pipeline depends on; *Client is the real
// implementation.
type Uploader interface {
	Upload(ctx context.Context, csvContent, filename string) (*UploadResult, error)
}

// Client talks to the Apps Script endpoint. The zero http.Client is used by
// default: no client-side timeout is imposed beyond what the network stack
// provides, matching the rest of the pipeline's no-timeout policy.
type Client struct {
	url      string
	folderID string
	httpc    *http.Client
	log      zerolog.Logger
}

// NewClient creates a Client for the given Apps Script deployment.
func NewClient(url, folderID string, log zerolog.Logger) *Client {
	return &Client{
		url:      url,
		folderID: folderID,
		httpc:    &http.Client{},
		log:      log.With().Str("component", "drive_client").Logger(),
	}
}

// Upload sends csvContent to the endpoint as filename, replacing any file of
// the same name on the Drive side. Preconditions fail fast without issuing a
// request. Failures are rewritten into operator-actionable messages where the
// underlying cause is recognizable. No retries.
func (c *Client) Upload(ctx context.Context, csvContent, filename string) (*UploadResult, error) {
	if c.url == "" || strings.Contains(c.url, placeholderMarker) {
		return nil, ErrURLNotConfigured
	}
	if strings.TrimSpace(csvContent) == "" {
		return nil, ErrEmptyCSV
	}
	if c.folderID == "" {
		return nil, ErrFolderNotConfigured
	}

	body, err := json.Marshal(uploadRequest{
		Action:     uploadAction,
		FolderID:   c.folderID,
		Filename:   filename,
		CSVContent: csvContent,
	})
	if err != nil {
		return nil, fmt.Errorf("encode upload request: %w", err)
	}

	c.log.Debug().
		Str("filename", filename).
		Int("csv_bytes", len(csvContent)).
		Msg("Uploading CSV to Drive")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build upload request: %w", err)
	}
	// text/plain keeps browser-side callers of the same deployment free of
	// CORS preflights; the Apps Script endpoint parses the body as JSON
	// regardless. Part of the wire contract, not negotiable per deployment.
	req.Header.Set("Content-Type", "text/plain;charset=utf-8")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, translateError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		text, _ := io.ReadAll(resp.Body)
		return nil, translateError(fmt.Errorf("HTTP error: status %d, message: %s", resp.StatusCode, strings.TrimSpace(string(text))))
	}

	var result uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode upload response: %w", err)
	}

	if !result.Success {
		msg := result.Error
		if msg == "" {
			msg = "Upload failed"
		}
		return nil, errors.New(msg)
	}

	c.log.Info().Str("file_id", result.FileID).Msg("CSV uploaded to Drive")
	return &UploadResult{FileID: result.FileID}, nil
}

// translateError rewrites recognizable failure causes into messages an
// operator can act on while debugging the Apps Script deployment. Anything
// unrecognized passes through untouched.
func translateError(err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "connection refused"),
		strings.Contains(msg, "no such host"),
		strings.Contains(msg, "network is unreachable"):
		return errors.New("Network error: could not reach the Apps Script endpoint. Check your internet connection and the Apps Script URL.")
	case strings.Contains(msg, "CORS"):
		return errors.New(`CORS error: make sure the Apps Script is deployed with "Who has access" set to "Anyone".`)
	case strings.Contains(msg, "status 404"):
		return errors.New("Apps Script not found: check that the URL is correct and the script is deployed.")
	case strings.Contains(msg, "status 403"):
		return errors.New(`Access denied: make sure the script is authorized and "Who has access" is set to "Anyone".`)
	}
	return err
}
