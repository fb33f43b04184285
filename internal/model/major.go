package model

// MajorYears maps each program code to the years open for registration.
// The year select in the form is repopulated from this table whenever the
// major changes; the pipeline itself does not re-check the pairing at save
// time (the form is the only enforcement point).
var MajorYears = map[string][]int{
	"CP":     {1, 2},
	"GIIA":   {1, 2, 3},
	"GINF":   {1, 2, 3},
	"GTR":    {1, 2, 3},
	"GMSI":   {1, 2, 3},
	"GINDUS": {1, 2, 3},
	"GATE":   {1, 2, 3},
	"GPMA":   {1, 2, 3},
}

// MajorCodes is the display order for the program codes in MajorYears.
var MajorCodes = []string{"CP", "GIIA", "GINF", "GTR", "GMSI", "GINDUS", "GATE", "GPMA"}

// YearsFor returns the allowed years for a program code, or nil for an
// unknown code.
func YearsFor(major string) []int {
	return MajorYears[major]
}
