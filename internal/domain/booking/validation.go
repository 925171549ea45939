package booking

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// DateLayout is the day-granularity layout booking dates arrive in.
const DateLayout = "2006-01-02"

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Submission is an incoming booking request as submitted by the public form.
type Submission struct {
	CustomerName            string     `json:"customerName"`
	CustomerEmail           string     `json:"customerEmail"`
	CustomerPhone           string     `json:"customerPhone"`
	CustomerCountry         string     `json:"customerCountry"`
	CustomerAddress         string     `json:"customerAddress"`
	EmergencyContact        string     `json:"emergencyContact"`
	BookingType             string     `json:"bookingType"`
	ItemID                  string     `json:"itemId"`
	ItemName                string     `json:"itemName"`
	NumberOfTravelers       int        `json:"numberOfTravelers"`
	NumberOfAdults          int        `json:"numberOfAdults"`
	NumberOfChildren        int        `json:"numberOfChildren"`
	PreferredStartDate      string     `json:"preferredStartDate"`
	PreferredEndDate        string     `json:"preferredEndDate"`
	DietaryRequirements     string     `json:"dietaryRequirements"`
	SpecialRequests         string     `json:"specialRequests"`
	AccommodationPreference string     `json:"accommodationPreference"`
	BudgetRange             string     `json:"budgetRange"`
	NeedsInsurance          bool       `json:"needsInsurance"`
	NeedsVisa               bool       `json:"needsVisa"`
	NeedsFlights            bool       `json:"needsFlights"`
	Travelers               []Traveler `json:"travelers"`
	TotalAmount             float64    `json:"totalAmount"`
	Currency                string     `json:"currency"`
}

// ValidationResult aggregates every violated rule for a submission.
type ValidationResult struct {
	Valid  bool     `json:"isValid"`
	Errors []string `json:"errors"`
}

// ParseDate parses a day-granularity booking date.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// ValidateSubmission checks a submission against every creation rule and
// collects all violations rather than failing fast. The rule order is fixed so
// the error list is stable for form re-display. Updates are never re-validated
// against these rules.
func ValidateSubmission(sub Submission, now time.Time) ValidationResult {
	var errs []string

	if strings.TrimSpace(sub.CustomerName) == "" {
		errs = append(errs, "Customer name is required")
	}
	if strings.TrimSpace(sub.CustomerEmail) == "" {
		errs = append(errs, "Customer email is required")
	} else if !emailPattern.MatchString(sub.CustomerEmail) {
		errs = append(errs, "Customer email is not a valid email address")
	}
	if strings.TrimSpace(sub.CustomerPhone) == "" {
		errs = append(errs, "Customer phone is required")
	}
	if strings.TrimSpace(sub.ItemID) == "" {
		errs = append(errs, "Item ID is required")
	}
	if strings.TrimSpace(sub.ItemName) == "" {
		errs = append(errs, "Item name is required")
	}
	if sub.NumberOfTravelers < 1 {
		errs = append(errs, "At least one traveler is required")
	}
	if sub.NumberOfAdults < 1 {
		errs = append(errs, "At least one adult is required")
	}
	if sub.NumberOfChildren < 0 {
		errs = append(errs, "Number of children cannot be negative")
	}
	if sub.NumberOfAdults+sub.NumberOfChildren != sub.NumberOfTravelers {
		errs = append(errs, "Number of adults and children must add up to the number of travelers")
	}

	var start time.Time
	startValid := false
	if strings.TrimSpace(sub.PreferredStartDate) == "" {
		errs = append(errs, "Preferred start date is required")
	} else if parsed, err := ParseDate(sub.PreferredStartDate); err != nil {
		errs = append(errs, "Preferred start date is invalid")
	} else {
		start = parsed
		startValid = true
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		if start.Before(today) {
			errs = append(errs, "Preferred start date cannot be in the past")
		}
	}

	if strings.TrimSpace(sub.PreferredEndDate) != "" {
		if end, err := ParseDate(sub.PreferredEndDate); err != nil {
			errs = append(errs, "Preferred end date is invalid")
		} else if startValid && !end.After(start) {
			errs = append(errs, "Preferred end date must be after the start date")
		}
	}

	for i, t := range sub.Travelers {
		if strings.TrimSpace(t.Name) == "" {
			errs = append(errs, fmt.Sprintf("Traveler %d: name is required", i+1))
		}
		if t.Age != nil && (*t.Age < 0 || *t.Age > 120) {
			errs = append(errs, fmt.Sprintf("Traveler %d: age must be between 0 and 120", i+1))
		}
	}

	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}
