package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var validationNow = time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)

func validSubmission() Submission {
	return Submission{
		CustomerName:       "Amira Hassan",
		CustomerEmail:      "amira@example.com",
		CustomerPhone:      "+60123456789",
		CustomerCountry:    "Malaysia",
		BookingType:        "package",
		ItemID:             "pkg-bali-7d",
		ItemName:           "Bali Explorer 7 Days",
		NumberOfTravelers:  2,
		NumberOfAdults:     2,
		NumberOfChildren:   0,
		PreferredStartDate: "2026-06-01",
		PreferredEndDate:   "2026-06-07",
		Travelers: []Traveler{
			{Name: "Amira Hassan", Age: intPtr(34)},
			{Name: "Farid Hassan", Age: intPtr(36)},
		},
		TotalAmount: 4200,
		Currency:    "USD",
	}
}

func intPtr(v int) *int { return &v }

func TestValidateSubmission_Valid(t *testing.T) {
	result := ValidateSubmission(validSubmission(), validationNow)
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
}

func TestValidateSubmission_CollectsAllViolations(t *testing.T) {
	sub := validSubmission()
	sub.CustomerName = "   "
	sub.CustomerEmail = ""
	sub.ItemID = ""
	sub.PreferredStartDate = ""

	result := ValidateSubmission(sub, validationNow)
	require.False(t, result.Valid)
	assert.Equal(t, []string{
		"Customer name is required",
		"Customer email is required",
		"Item ID is required",
		"Preferred start date is required",
	}, result.Errors)
}

func TestValidateSubmission_EmailShape(t *testing.T) {
	sub := validSubmission()
	sub.CustomerEmail = "not-an-email"

	result := ValidateSubmission(sub, validationNow)
	require.False(t, result.Valid)
	assert.Contains(t, result.Errors, "Customer email is not a valid email address")
}

func TestValidateSubmission_TravelerCounts(t *testing.T) {
	sub := validSubmission()
	sub.NumberOfTravelers = 3
	sub.NumberOfAdults = 1
	sub.NumberOfChildren = 1

	result := ValidateSubmission(sub, validationNow)
	require.False(t, result.Valid)
	assert.Equal(t, []string{"Number of adults and children must add up to the number of travelers"}, result.Errors)
}

func TestValidateSubmission_NoAdults(t *testing.T) {
	sub := validSubmission()
	sub.NumberOfAdults = 0
	sub.NumberOfChildren = 2

	result := ValidateSubmission(sub, validationNow)
	require.False(t, result.Valid)
	assert.Contains(t, result.Errors, "At least one adult is required")
}

func TestValidateSubmission_NegativeChildren(t *testing.T) {
	sub := validSubmission()
	sub.NumberOfTravelers = 1
	sub.NumberOfAdults = 2
	sub.NumberOfChildren = -1

	result := ValidateSubmission(sub, validationNow)
	require.False(t, result.Valid)
	assert.Contains(t, result.Errors, "Number of children cannot be negative")
}

func TestValidateSubmission_StartDateToday(t *testing.T) {
	sub := validSubmission()
	sub.PreferredStartDate = "2026-03-10"
	sub.PreferredEndDate = "2026-03-12"

	// Today counts as not-in-the-past regardless of the time of day.
	result := ValidateSubmission(sub, validationNow)
	assert.True(t, result.Valid)
}

func TestValidateSubmission_StartDateInPast(t *testing.T) {
	sub := validSubmission()
	sub.PreferredStartDate = "2026-03-09"
	sub.PreferredEndDate = ""

	result := ValidateSubmission(sub, validationNow)
	require.False(t, result.Valid)
	assert.Equal(t, []string{"Preferred start date cannot be in the past"}, result.Errors)
}

func TestValidateSubmission_MalformedDates(t *testing.T) {
	sub := validSubmission()
	sub.PreferredStartDate = "01/06/2026"
	sub.PreferredEndDate = "junk"

	result := ValidateSubmission(sub, validationNow)
	require.False(t, result.Valid)
	assert.Contains(t, result.Errors, "Preferred start date is invalid")
	assert.Contains(t, result.Errors, "Preferred end date is invalid")
}

func TestValidateSubmission_EndDateNotAfterStart(t *testing.T) {
	sub := validSubmission()
	sub.PreferredEndDate = "2026-06-01"

	result := ValidateSubmission(sub, validationNow)
	require.False(t, result.Valid)
	assert.Equal(t, []string{"Preferred end date must be after the start date"}, result.Errors)
}

func TestValidateSubmission_EndDateOptional(t *testing.T) {
	sub := validSubmission()
	sub.PreferredEndDate = ""

	result := ValidateSubmission(sub, validationNow)
	assert.True(t, result.Valid)
}

func TestValidateSubmission_TravelerRoster(t *testing.T) {
	sub := validSubmission()
	sub.Travelers = []Traveler{
		{Name: "", Age: intPtr(30)},
		{Name: "Valid Traveler", Age: intPtr(121)},
		{Name: "No Age Given"},
	}

	result := ValidateSubmission(sub, validationNow)
	require.False(t, result.Valid)
	assert.Equal(t, []string{
		"Traveler 1: name is required",
		"Traveler 2: age must be between 0 and 120",
	}, result.Errors)
}

func TestValidateSubmission_TravelerAgeBounds(t *testing.T) {
	sub := validSubmission()
	sub.Travelers = []Traveler{
		{Name: "Newborn", Age: intPtr(0)},
		{Name: "Elder", Age: intPtr(120)},
	}

	result := ValidateSubmission(sub, validationNow)
	assert.True(t, result.Valid)

	sub.Travelers = []Traveler{{Name: "Impossible", Age: intPtr(-1)}}
	result = ValidateSubmission(sub, validationNow)
	assert.False(t, result.Valid)
}
