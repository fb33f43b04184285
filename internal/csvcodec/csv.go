// Package csvcodec serializes registration lists into the spreadsheet-facing
// CSV layout: fixed header, newline-joined rows, UTF-8 BOM on export.
package csvcodec

import (
	"strconv"
	"strings"
	"time"

	"github.com/eniac-club/regdesk/internal/model"
)

// Headers is the fixed column set. Column order is part of the export
// contract with the Drive-side consumers.
var Headers = []string{
	"ID", "Full Name", "Phone Number", "Email", "Gender",
	"Major", "Year", "Notes", "Registration Date",
}

// bom is the UTF-8 byte-order-mark. Spreadsheet applications use it to
// detect UTF-8 instead of guessing a legacy codepage.
var bom = []byte{0xEF, 0xBB, 0xBF}

// dateLayout renders Registration Date as a human date-time, not the raw
// stored ISO value. The export is a lossy projection on purpose.
const dateLayout = "1/2/2006, 3:04:05 PM"

// Generate serializes registrations in input order. An empty list yields an
// empty string with no header. Only Full Name and Notes are quote-escaped;
// every other column is emitted raw, which is safe only because those fields
// come from a tightly constrained input domain.
func Generate(registrations []model.Registration) string {
	if len(registrations) == 0 {
		return ""
	}

	rows := make([]string, 0, len(registrations)+1)
	rows = append(rows, strings.Join(Headers, ","))

	for _, reg := range registrations {
		row := []string{
			strconv.FormatInt(reg.ID, 10),
			escape(reg.FullName),
			reg.PhoneNumber,
			reg.Email,
			reg.Gender,
			reg.Major,
			reg.Year,
			escape(reg.Notes),
			formatDate(reg.Timestamp),
		}
		rows = append(rows, strings.Join(row, ","))
	}

	return strings.Join(rows, "\n")
}

// WithBOM prefixes the UTF-8 BOM for spreadsheet compatibility.
func WithBOM(csvContent string) []byte {
	return append(append([]byte{}, bom...), csvContent...)
}

// BackupFilename names a manual export: registrations_backup_<ISO-date>.csv.
func BackupFilename(now time.Time) string {
	return "registrations_backup_" + now.UTC().Format("2006-01-02") + ".csv"
}

// escape wraps a field in quotes with internal quotes doubled. Empty fields
// stay empty rather than becoming "".
func escape(field string) string {
	if field == "" {
		return ""
	}
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

// formatDate converts the stored timestamp into the display layout. An
// unparseable timestamp is emitted empty, matching how absent values render.
func formatDate(timestamp string) string {
	if timestamp == "" {
		return ""
	}
	t, err := time.Parse(time.RFC3339, timestamp)
	if err != nil {
		return ""
	}
	return t.Format(dateLayout)
}
