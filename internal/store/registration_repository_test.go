package store

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/eniac-club/regdesk/internal/model"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "workshopRegistrations"

func newTestRepo(t *testing.T) *RegistrationRepository {
	t.Helper()
	path := filepath.Join(t.TempDir(), "store.json")
	return NewRegistrationRepository(NewFile(path), testKey, zerolog.Nop())
}

func sampleForm() model.FormData {
	return model.FormData{
		FullName:    "Amina B.",
		PhoneNumber: "+212 612 345 678",
		Gender:      "F",
		Major:       "GIIA",
		Year:        "2",
	}
}

func TestSaveAssignsIDAndTimestamp(t *testing.T) {
	repo := newTestRepo(t)
	fixed := time.Date(2025, 3, 14, 9, 26, 53, 589_000_000, time.UTC)
	repo.now = func() time.Time { return fixed }

	reg, err := repo.Save(sampleForm())
	require.NoError(t, err)

	assert.Equal(t, fixed.UnixMilli(), reg.ID)
	assert.Equal(t, "2025-03-14T09:26:53.589Z", reg.Timestamp)
	assert.Equal(t, "Amina B.", reg.FullName)
	assert.Equal(t, "+212 612 345 678", reg.PhoneNumber)
}

func TestSaveAppendsInInsertionOrder(t *testing.T) {
	repo := newTestRepo(t)

	first := sampleForm()
	second := sampleForm()
	second.FullName = "Karim Z."
	second.PhoneNumber = "+212 698 765 432"

	_, err := repo.Save(first)
	require.NoError(t, err)
	_, err = repo.Save(second)
	require.NoError(t, err)

	all := repo.GetAll()
	require.Len(t, all, 2)
	assert.Equal(t, "Amina B.", all[0].FullName)
	assert.Equal(t, "Karim Z.", all[1].FullName)
	assert.Equal(t, 2, repo.Count())
}

func TestSaveRejectsDuplicatePhone(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.Save(sampleForm())
	require.NoError(t, err)

	// Same digits, different spacing: must still be caught.
	dup := sampleForm()
	dup.FullName = "Someone Else"
	dup.PhoneNumber = "+212  612 345 678 "

	_, err = repo.Save(dup)
	assert.ErrorIs(t, err, ErrDuplicateEntry)
	assert.Equal(t, 1, repo.Count(), "rejected save must not write")
}

func TestGetAllEmptyWhenKeyAbsent(t *testing.T) {
	repo := newTestRepo(t)
	assert.Empty(t, repo.GetAll())
	assert.Equal(t, 0, repo.Count())
}

func TestGetAllSwallowsCorruptStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	repo := NewRegistrationRepository(NewFile(path), testKey, zerolog.Nop())
	assert.Empty(t, repo.GetAll())

	// A save after corruption rebuilds the store around the new record.
	_, err := repo.Save(sampleForm())
	require.NoError(t, err)
	assert.Equal(t, 1, repo.Count())
}

func TestClearIsIdempotent(t *testing.T) {
	repo := newTestRepo(t)
	_, err := repo.Save(sampleForm())
	require.NoError(t, err)

	require.NoError(t, repo.Clear())
	assert.Equal(t, 0, repo.Count())
	assert.Empty(t, repo.GetAll())

	// Clearing an already-empty store still succeeds.
	require.NoError(t, repo.Clear())
}

// Concurrent saves through one repository must not lose writes: the
// repository mutex makes each read-check-append-write sequence atomic. This
// is the hazard that two browser tabs sharing one storage area would hit.
func TestConcurrentSavesDoNotLoseWrites(t *testing.T) {
	repo := newTestRepo(t)

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			form := sampleForm()
			form.PhoneNumber = "+212 612 345 " + string(rune('0'+i/10)) + string(rune('0'+i%10)) + "0"
			_, err := repo.Save(form)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, n, repo.Count())
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "+212612345678", normalizePhone("+212 612 345 678"))
	assert.Equal(t, "+212612345678", normalizePhone(" +212\t612 345 678 "))
	assert.Equal(t, "", normalizePhone("   "))
}
