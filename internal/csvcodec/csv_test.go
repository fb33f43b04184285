package csvcodec

import (
	"strings"
	"testing"
	"time"

	"github.com/eniac-club/regdesk/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateEmptyList(t *testing.T) {
	assert.Equal(t, "", Generate(nil))
	assert.Equal(t, "", Generate([]model.Registration{}))
}

func TestGenerateSingleRecord(t *testing.T) {
	reg := model.Registration{
		ID:          1741944413589,
		FullName:    "Amina B.",
		PhoneNumber: "+212 612 345 678",
		Email:       "amina@example.com",
		Gender:      "F",
		Major:       "GIIA",
		Year:        "2",
		Notes:       "vegetarian",
		Timestamp:   "2025-03-14T09:26:53.589Z",
	}

	out := Generate([]model.Registration{reg})
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)

	assert.Equal(t, "ID,Full Name,Phone Number,Email,Gender,Major,Year,Notes,Registration Date", lines[0])
	assert.Equal(t, `1741944413589,"Amina B.",+212 612 345 678,amina@example.com,F,GIIA,2,"vegetarian",3/14/2025, 9:26:53 AM`, lines[1])
}

func TestGenerateEscapesOnlyNameAndNotes(t *testing.T) {
	reg := model.Registration{
		ID:          1,
		FullName:    `Jean "JJ" Dupont, Jr.`,
		PhoneNumber: "+212 612 345 678",
		Notes:       `needs a, "quiet" seat`,
	}

	out := Generate([]model.Registration{reg})
	dataLine := strings.Split(out, "\n")[1]

	assert.Contains(t, dataLine, `"Jean ""JJ"" Dupont, Jr."`)
	assert.Contains(t, dataLine, `"needs a, ""quiet"" seat"`)
	// Phone is emitted raw, unquoted.
	assert.Contains(t, dataLine, ",+212 612 345 678,")
}

func TestGeneratePreservesInputOrder(t *testing.T) {
	regs := []model.Registration{
		{ID: 3, FullName: "C"},
		{ID: 1, FullName: "A"},
		{ID: 2, FullName: "B"},
	}

	lines := strings.Split(Generate(regs), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[1], "3,"))
	assert.True(t, strings.HasPrefix(lines[2], "1,"))
	assert.True(t, strings.HasPrefix(lines[3], "2,"))
}

func TestGenerateUnparseableTimestamp(t *testing.T) {
	regs := []model.Registration{{ID: 1, FullName: "A", Timestamp: "garbage"}}
	lines := strings.Split(Generate(regs), "\n")
	assert.True(t, strings.HasSuffix(lines[1], ","), "bad timestamp renders empty")
}

func TestWithBOM(t *testing.T) {
	out := WithBOM("ID\n1")
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, out[:3])
	assert.Equal(t, "ID\n1", string(out[3:]))
}

func TestBackupFilename(t *testing.T) {
	now := time.Date(2025, 3, 14, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "registrations_backup_2025-03-14.csv", BackupFilename(now))
}
