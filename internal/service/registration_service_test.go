package service

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/eniac-club/regdesk/internal/drive"
	"github.com/eniac-club/regdesk/internal/model"
	"github.com/eniac-club/regdesk/internal/store"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUploader struct {
	calls    int
	lastCSV  string
	lastName string
	err      error
}

func (f *fakeUploader) Upload(_ context.Context, csvContent, filename string) (*drive.UploadResult, error) {
	f.calls++
	f.lastCSV = csvContent
	f.lastName = filename
	if f.err != nil {
		return nil, f.err
	}
	return &drive.UploadResult{FileID: "file-1"}, nil
}

type countRecorder struct {
	counts []int
}

func (r *countRecorder) NotifyCount(count int) { r.counts = append(r.counts, count) }

func newPipeline(t *testing.T, uploader *fakeUploader) (*RegistrationService, *store.RegistrationRepository, *countRecorder) {
	t.Helper()
	repo := store.NewRegistrationRepository(
		store.NewFile(filepath.Join(t.TempDir(), "store.json")),
		"workshopRegistrations",
		zerolog.Nop(),
	)
	rec := &countRecorder{}
	svc := NewRegistrationService(repo, uploader, rec, "workshop-registrations.csv", zerolog.Nop())
	return svc, repo, rec
}

func validSubmission() model.FormData {
	return model.FormData{
		FullName:    "Amina B.",
		PhoneNumber: "+212 612 345 678",
		Gender:      "F",
		Major:       "GIIA",
		Year:        "2",
	}
}

func TestSubmitSuccessUploadsFullDataset(t *testing.T) {
	uploader := &fakeUploader{}
	svc, repo, rec := newPipeline(t, uploader)

	result, err := svc.Submit(context.Background(), validSubmission())
	require.NoError(t, err)

	assert.True(t, result.Synced)
	assert.NotNil(t, result.Registration)
	assert.Equal(t, 1, repo.Count())
	assert.Equal(t, []int{1}, rec.counts)

	assert.Equal(t, 1, uploader.calls)
	assert.Equal(t, "workshop-registrations.csv", uploader.lastName)
	lines := strings.Split(uploader.lastCSV, "\n")
	require.Len(t, lines, 2, "header plus one data row")
	assert.Contains(t, lines[1], `"Amina B."`)
}

func TestSubmitDuplicateMakesNoUploadCall(t *testing.T) {
	uploader := &fakeUploader{}
	svc, repo, _ := newPipeline(t, uploader)

	_, err := svc.Submit(context.Background(), validSubmission())
	require.NoError(t, err)
	require.Equal(t, 1, uploader.calls)

	// Same phone with extra spaces still normalizes to a duplicate.
	dup := validSubmission()
	dup.PhoneNumber = "+212  612 345 678"

	_, err = svc.Submit(context.Background(), dup)
	assert.ErrorIs(t, err, store.ErrDuplicateEntry)
	assert.Equal(t, 1, uploader.calls, "duplicate must not trigger an upload")
	assert.Equal(t, 1, repo.Count())
}

func TestSubmitValidationFailureShortCircuits(t *testing.T) {
	uploader := &fakeUploader{}
	svc, repo, rec := newPipeline(t, uploader)

	form := validSubmission()
	form.FullName = ""
	form.PhoneNumber = "+212 12 345 678" // wrong grouping

	_, err := svc.Submit(context.Background(), form)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Len(t, ve.Fields, 2)
	assert.Contains(t, ve.Fields, "fullName")
	assert.Contains(t, ve.Fields, "phoneNumber")

	assert.Equal(t, 0, repo.Count(), "nothing persisted")
	assert.Equal(t, 0, uploader.calls, "no network call")
	assert.Empty(t, rec.counts)
}

func TestSubmitSurvivesUploadFailure(t *testing.T) {
	uploader := &fakeUploader{err: errors.New("Network error: could not reach the Apps Script endpoint")}
	svc, repo, _ := newPipeline(t, uploader)

	result, err := svc.Submit(context.Background(), validSubmission())
	require.NoError(t, err, "upload failure does not fail the submission")

	assert.False(t, result.Synced)
	assert.Contains(t, result.SyncError, "Network error")
	assert.Equal(t, 1, repo.Count(), "local save is kept")
}

func TestSubmitSecondRecordReuploadsEverything(t *testing.T) {
	uploader := &fakeUploader{}
	svc, _, _ := newPipeline(t, uploader)

	_, err := svc.Submit(context.Background(), validSubmission())
	require.NoError(t, err)

	second := validSubmission()
	second.FullName = "Karim Z."
	second.PhoneNumber = "+212 698 765 432"
	_, err = svc.Submit(context.Background(), second)
	require.NoError(t, err)

	assert.Equal(t, 2, uploader.calls)
	lines := strings.Split(uploader.lastCSV, "\n")
	assert.Len(t, lines, 3, "second upload carries the full dataset")
}

func TestFormatPhone(t *testing.T) {
	svc, _, _ := newPipeline(t, &fakeUploader{})
	assert.Equal(t, "+212 612 345 678", svc.FormatPhone("0612345678"))
}
