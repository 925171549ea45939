package application

import (
	"context"
	"fmt"
	"sort"
	"time"

	bookingDomain "github.com/bright-horizons-travel/service-booking/internal/domain/booking"
	"github.com/bright-horizons-travel/service-booking/internal/pkg/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// statsWindow bounds the number of records a single aggregation scans.
const statsWindow = 5000

const (
	GroupByDay   = "day"
	GroupByWeek  = "week"
	GroupByMonth = "month"
)

// confirmedGroup is the set of statuses counted as "confirmed" in the coarse
// status buckets.
var confirmedGroup = map[bookingDomain.Status]bool{
	bookingDomain.StatusConfirmed:       true,
	bookingDomain.StatusPaymentPending:  true,
	bookingDomain.StatusPaymentPartial:  true,
	bookingDomain.StatusPaymentComplete: true,
	bookingDomain.StatusDocumentsSent:   true,
	bookingDomain.StatusInProgress:      true,
}

// MonthBucket is one month of the trailing trend, oldest first.
type MonthBucket struct {
	Month   string  `json:"month"`
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

// ItemStat aggregates bookings for one catalog item.
type ItemStat struct {
	ItemID   string  `json:"itemId"`
	ItemName string  `json:"itemName"`
	Count    int     `json:"count"`
	Revenue  float64 `json:"revenue"`
}

// CountryStat aggregates bookings by customer country.
type CountryStat struct {
	Country string `json:"country"`
	Count   int    `json:"count"`
}

// RecentBooking is the reduced projection used in stats output.
type RecentBooking struct {
	ID               uuid.UUID `json:"id"`
	BookingReference string    `json:"bookingReference"`
	CustomerName     string    `json:"customerName"`
	ItemName         string    `json:"itemName"`
	Status           string    `json:"status"`
	TotalAmount      float64   `json:"totalAmount"`
	CreatedAt        time.Time `json:"createdAt"`
}

// BookingStats is the aggregate dashboard view over the scanned window.
type BookingStats struct {
	TotalBookings     int `json:"totalBookings"`
	PendingBookings   int `json:"pendingBookings"`
	ConfirmedBookings int `json:"confirmedBookings"`
	CompletedBookings int `json:"completedBookings"`
	CancelledBookings int `json:"cancelledBookings"`

	TotalRevenue        float64 `json:"totalRevenue"`
	PendingRevenue      float64 `json:"pendingRevenue"`
	ConfirmedRevenue    float64 `json:"confirmedRevenue"`
	AverageBookingValue float64 `json:"averageBookingValue"`

	MonthlyTrend   []MonthBucket   `json:"monthlyTrend"`
	TopItems       []ItemStat      `json:"topItems"`
	TopCountries   []CountryStat   `json:"topCountries"`
	RecentBookings []RecentBooking `json:"recentBookings"`
}

// GroupedBucket is one time bucket of the secondary grouping mode.
type GroupedBucket struct {
	Key          string          `json:"key"`
	Count        int             `json:"count"`
	Revenue      float64         `json:"revenue"`
	AverageValue float64         `json:"averageValue"`
	StatusCounts map[string]int  `json:"statusCounts"`
	Bookings     []RecentBooking `json:"bookings,omitempty"`
}

// StatsService computes booking statistics over a bounded scan. The scan is not
// transactionally consistent with concurrent writers; a booking committed
// mid-scan may be partially reflected.
type StatsService struct {
	bookings bookingDomain.BookingRepository
	logger   *zap.Logger
}

// NewStatsService creates a new StatsService.
func NewStatsService(bookings bookingDomain.BookingRepository, logger *zap.Logger) *StatsService {
	return &StatsService{bookings: bookings, logger: logger}
}

// GetBookingStats aggregates the dashboard statistics, optionally restricted to
// a creation-date range.
func (s *StatsService) GetBookingStats(ctx context.Context, from, to *time.Time) (*BookingStats, error) {
	records, err := s.bookings.ListForStats(ctx, from, to, statsWindow)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings for stats: %w", err)
	}

	stats := &BookingStats{
		MonthlyTrend:   []MonthBucket{},
		TopItems:       []ItemStat{},
		TopCountries:   []CountryStat{},
		RecentBookings: []RecentBooking{},
	}

	monthly := map[string]*MonthBucket{}
	itemIndex := map[string]int{}
	items := []ItemStat{}
	countryIndex := map[string]int{}
	countries := []CountryStat{}

	for _, bk := range records {
		stats.TotalBookings++
		stats.TotalRevenue += bk.TotalAmount

		switch {
		case bk.Status == bookingDomain.StatusPending:
			stats.PendingBookings++
			stats.PendingRevenue += bk.TotalAmount
		case confirmedGroup[bk.Status]:
			stats.ConfirmedBookings++
			stats.ConfirmedRevenue += bk.TotalAmount
		case bk.Status == bookingDomain.StatusCompleted:
			stats.CompletedBookings++
		case bk.Status == bookingDomain.StatusCancelled:
			stats.CancelledBookings++
		}

		monthKey := bk.CreatedAt.Format("2006-01")
		if bucket, ok := monthly[monthKey]; ok {
			bucket.Count++
			bucket.Revenue += bk.TotalAmount
		} else {
			monthly[monthKey] = &MonthBucket{Month: monthKey, Count: 1, Revenue: bk.TotalAmount}
		}

		if idx, ok := itemIndex[bk.ItemID]; ok {
			items[idx].Count++
			items[idx].Revenue += bk.TotalAmount
		} else {
			itemIndex[bk.ItemID] = len(items)
			items = append(items, ItemStat{
				ItemID:   bk.ItemID,
				ItemName: bk.ItemName,
				Count:    1,
				Revenue:  bk.TotalAmount,
			})
		}

		if bk.CustomerCountry != "" {
			if idx, ok := countryIndex[bk.CustomerCountry]; ok {
				countries[idx].Count++
			} else {
				countryIndex[bk.CustomerCountry] = len(countries)
				countries = append(countries, CountryStat{Country: bk.CustomerCountry, Count: 1})
			}
		}
	}

	if stats.TotalBookings > 0 {
		stats.AverageBookingValue = stats.TotalRevenue / float64(stats.TotalBookings)
	}

	// Trailing twelve calendar months, oldest to newest.
	now := time.Now().UTC()
	for i := 11; i >= 0; i-- {
		month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -i, 0)
		key := month.Format("2006-01")
		if bucket, ok := monthly[key]; ok {
			stats.MonthlyTrend = append(stats.MonthlyTrend, *bucket)
		} else {
			stats.MonthlyTrend = append(stats.MonthlyTrend, MonthBucket{Month: key})
		}
	}

	// Stable sort keeps insertion order for count ties.
	sort.SliceStable(items, func(i, j int) bool { return items[i].Count > items[j].Count })
	if len(items) > 10 {
		items = items[:10]
	}
	stats.TopItems = items

	sort.SliceStable(countries, func(i, j int) bool { return countries[i].Count > countries[j].Count })
	if len(countries) > 10 {
		countries = countries[:10]
	}
	stats.TopCountries = countries

	recent := make([]*bookingDomain.Booking, len(records))
	copy(recent, records)
	sort.SliceStable(recent, func(i, j int) bool { return recent[i].CreatedAt.After(recent[j].CreatedAt) })
	if len(recent) > 5 {
		recent = recent[:5]
	}
	for _, bk := range recent {
		stats.RecentBookings = append(stats.RecentBookings, toRecentBooking(bk))
	}

	return stats, nil
}

// GetGroupedStats buckets bookings by day, week (Sunday-aligned) or month and
// reports per-bucket aggregates, sorted ascending by bucket key.
func (s *StatsService) GetGroupedStats(ctx context.Context, from, to *time.Time, groupBy string, includeDetails bool) ([]GroupedBucket, error) {
	keyFn, err := bucketKeyFunc(groupBy)
	if err != nil {
		return nil, err
	}

	records, err := s.bookings.ListForStats(ctx, from, to, statsWindow)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings for grouped stats: %w", err)
	}

	buckets := map[string]*GroupedBucket{}
	for _, bk := range records {
		key := keyFn(bk.CreatedAt)
		bucket, ok := buckets[key]
		if !ok {
			bucket = &GroupedBucket{Key: key, StatusCounts: map[string]int{}}
			buckets[key] = bucket
		}
		bucket.Count++
		bucket.Revenue += bk.TotalAmount
		bucket.StatusCounts[string(bk.Status)]++
		if includeDetails {
			bucket.Bookings = append(bucket.Bookings, toRecentBooking(bk))
		}
	}

	out := make([]GroupedBucket, 0, len(buckets))
	for _, bucket := range buckets {
		if bucket.Count > 0 {
			bucket.AverageValue = bucket.Revenue / float64(bucket.Count)
		}
		out = append(out, *bucket)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func bucketKeyFunc(groupBy string) (func(time.Time) string, error) {
	switch groupBy {
	case GroupByDay:
		return func(t time.Time) string { return t.Format("2006-01-02") }, nil
	case GroupByWeek:
		return func(t time.Time) string {
			weekStart := t.AddDate(0, 0, -int(t.Weekday()))
			return weekStart.Format("2006-01-02")
		}, nil
	case GroupByMonth, "":
		return func(t time.Time) string { return t.Format("2006-01") }, nil
	default:
		return nil, domain.NewValidationError(fmt.Sprintf("invalid groupBy: %s", groupBy))
	}
}

func toRecentBooking(bk *bookingDomain.Booking) RecentBooking {
	return RecentBooking{
		ID:               bk.ID,
		BookingReference: bk.BookingReference,
		CustomerName:     bk.CustomerName,
		ItemName:         bk.ItemName,
		Status:           string(bk.Status),
		TotalAmount:      bk.TotalAmount,
		CreatedAt:        bk.CreatedAt,
	}
}
