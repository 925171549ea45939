package booking

import (
	"crypto/rand"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"time"
)

const referenceChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateReference creates a booking reference in the format
// "BH" + last six digits of the current epoch milliseconds + three random
// uppercase alphanumerics. No uniqueness check is made here; the store's unique
// index on the column is the only guard against a clash.
func GenerateReference() (string, error) {
	millis := strconv.FormatInt(time.Now().UnixMilli(), 10)
	suffix := millis[len(millis)-6:]

	random := make([]byte, 3)
	for i := range random {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(referenceChars))))
		if err != nil {
			return "", fmt.Errorf("failed to generate booking reference: %w", err)
		}
		random[i] = referenceChars[n.Int64()]
	}

	return "BH" + suffix + string(random), nil
}

// TravelDuration renders the trip length as a human-readable string. An unset
// end date yields "TBD". A one-day trip is "1 day"; anything longer is
// "<N> days <N-1> night(s)".
func TravelDuration(start time.Time, end *time.Time) string {
	if end == nil {
		return "TBD"
	}

	days := int(math.Ceil(math.Abs(end.Sub(start).Hours()) / 24))
	if days <= 1 {
		return "1 day"
	}

	nights := days - 1
	nightWord := "nights"
	if nights == 1 {
		nightWord = "night"
	}
	return fmt.Sprintf("%d days %d %s", days, nights, nightWord)
}
