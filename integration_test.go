//go:build integration

package main_test

import (
	"context"
	"testing"
	"time"

	"github.com/bright-horizons-travel/service-booking/internal/application"
	bookingDomain "github.com/bright-horizons-travel/service-booking/internal/domain/booking"
	bookingEvents "github.com/bright-horizons-travel/service-booking/internal/events"
	"github.com/bright-horizons-travel/service-booking/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func integrationSubmission() bookingDomain.Submission {
	return bookingDomain.Submission{
		CustomerName:       "Amira Hassan",
		CustomerEmail:      "amira@example.com",
		CustomerPhone:      "+60123456789",
		CustomerCountry:    "Malaysia",
		BookingType:        "package",
		ItemID:             "pkg-bali-7d",
		ItemName:           "Bali Explorer 7 Days",
		NumberOfTravelers:  2,
		NumberOfAdults:     2,
		PreferredStartDate: "2030-06-01",
		PreferredEndDate:   "2030-06-07",
		Travelers: []bookingDomain.Traveler{
			{Name: "Amira Hassan"},
			{Name: "Farid Hassan"},
		},
		TotalAmount: 4200,
		Currency:    "USD",
	}
}

// TestBookingLifecycle_EndToEnd walks a booking from submission through quoting,
// confirmation and completion against real Postgres and Kafka.
func TestBookingLifecycle_EndToEnd(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupBookingStack(t, infra.DB, infra.KafkaBrokers)
	defer stack.CleanupProducer()
	defer func() { _ = stack.Consumer.Close() }()

	ctx := context.Background()

	created, err := stack.Service.CreateBooking(ctx, integrationSubmission())
	require.NoError(t, err)
	assert.Equal(t, "pending", created.Status)
	require.NotNil(t, created.CustomerID, "submission upserts a customer")

	// booking.created lands on the topic.
	ce := consumeOneEvent(t, infra.KafkaBrokers, bookingEvents.TopicBookingEvents,
		bookingEvents.BookingCreated, 15*time.Second)
	var createdEvt bookingEvents.BookingCreatedEvent
	require.NoError(t, ce.ParseData(&createdEvt))
	assert.Equal(t, created.ID, createdEvt.BookingID)

	// Walk the happy path to completed.
	for _, next := range []string{"quote_sent", "quote_approved", "confirmed", "payment_pending", "payment_complete", "documents_sent", "in_progress", "completed"} {
		status := next
		updated, err := stack.Service.UpdateBooking(ctx, created.ID, application.UpdateBookingRequest{Status: &status})
		require.NoError(t, err, "transition to %s", next)
		assert.Equal(t, next, updated.Status)
	}

	final, err := stack.Service.GetBooking(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, final.ProgressPercent)
	assert.False(t, final.Editable)
	require.NotNil(t, final.BookingConfirmedAt)
	require.NotNil(t, final.TravelCompletedAt)

	// The stored row reflects the lifecycle stamps.
	var model repository.BookingModel
	require.NoError(t, infra.DB.Where("id = ?", created.ID).First(&model).Error)
	assert.Equal(t, "completed", model.Status)
	assert.NotNil(t, model.BookingConfirmedAt)
}

// TestPaymentRecorded_UpdatesPaidAmount verifies that a payment.recorded event
// on payment.events flows through the consumer into the booking's financials.
func TestPaymentRecorded_UpdatesPaidAmount(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupBookingStack(t, infra.DB, infra.KafkaBrokers)
	defer stack.CleanupProducer()
	defer func() { _ = stack.Consumer.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	created, err := stack.Service.CreateBooking(ctx, integrationSubmission())
	require.NoError(t, err)

	go func() { _ = stack.Consumer.Start(ctx) }()
	time.Sleep(3 * time.Second) // Wait for consumer group join.

	evt := bookingEvents.PaymentRecordedEvent{
		BookingID:  created.ID,
		Amount:     2100,
		Currency:   "USD",
		RecordedAt: time.Now().UTC(),
	}
	publishTestEvent(t, infra.KafkaBrokers, bookingEvents.TopicPaymentEvents,
		"service-finance", bookingEvents.PaymentRecorded, evt)

	model := waitForPaymentStatus(t, infra.DB, created.ID, "partial", 15*time.Second)
	assert.Equal(t, 2100.0, model.PaidAmount)
	assert.Equal(t, 2100.0, model.RemainingAmount)

	// A second payment completes the booking's financials.
	evt.Amount = 2100
	evt.RecordedAt = time.Now().UTC()
	publishTestEvent(t, infra.KafkaBrokers, bookingEvents.TopicPaymentEvents,
		"service-finance", bookingEvents.PaymentRecorded, evt)

	model = waitForPaymentStatus(t, infra.DB, created.ID, "complete", 15*time.Second)
	assert.Equal(t, 4200.0, model.PaidAmount)
	assert.Equal(t, 0.0, model.RemainingAmount)
}

// TestCancelBooking_EmitsCancelledEvent cancels a booking and asserts the
// soft-delete plus the booking.cancelled event.
func TestCancelBooking_EmitsCancelledEvent(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupBookingStack(t, infra.DB, infra.KafkaBrokers)
	defer stack.CleanupProducer()
	defer func() { _ = stack.Consumer.Close() }()

	ctx := context.Background()

	created, err := stack.Service.CreateBooking(ctx, integrationSubmission())
	require.NoError(t, err)

	cancelled, err := stack.Service.CancelBooking(ctx, created.ID, "customer request")
	require.NoError(t, err)
	assert.Equal(t, "cancelled", cancelled.Status)
	assert.False(t, cancelled.IsActive)

	ce := consumeOneEvent(t, infra.KafkaBrokers, bookingEvents.TopicBookingEvents,
		bookingEvents.BookingCancelled, 15*time.Second)
	var evt bookingEvents.BookingCancelledEvent
	require.NoError(t, ce.ParseData(&evt))
	assert.Equal(t, created.ID, evt.BookingID)
	assert.Equal(t, "customer request", evt.Reason)

	// The row survives as an inactive record.
	var model repository.BookingModel
	require.NoError(t, infra.DB.Where("id = ?", created.ID).First(&model).Error)
	assert.False(t, model.IsActive)
}

// TestStats_OverPersistedBookings exercises the aggregator against real rows.
func TestStats_OverPersistedBookings(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupBookingStack(t, infra.DB, infra.KafkaBrokers)
	defer stack.CleanupProducer()
	defer func() { _ = stack.Consumer.Close() }()

	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := stack.Service.CreateBooking(ctx, integrationSubmission())
		require.NoError(t, err)
	}

	stats, err := stack.Stats.GetBookingStats(ctx, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalBookings)
	assert.Equal(t, 3, stats.PendingBookings)
	assert.Equal(t, 12600.0, stats.TotalRevenue)
	assert.Equal(t, 4200.0, stats.AverageBookingValue)
	require.NotEmpty(t, stats.TopItems)
	assert.Equal(t, "pkg-bali-7d", stats.TopItems[0].ItemID)
}

// TestBookingReference_UniquePerBooking sanity-checks that creation never reuses
// a reference within a run.
func TestBookingReference_UniquePerBooking(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupBookingStack(t, infra.DB, infra.KafkaBrokers)
	defer stack.CleanupProducer()
	defer func() { _ = stack.Consumer.Close() }()

	ctx := context.Background()
	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		created, err := stack.Service.CreateBooking(ctx, integrationSubmission())
		require.NoError(t, err)
		assert.False(t, seen[created.BookingReference])
		seen[created.BookingReference] = true

		found, err := stack.Service.GetBookingByReference(ctx, created.BookingReference)
		require.NoError(t, err)
		assert.Equal(t, created.ID, found.ID)
	}
}
