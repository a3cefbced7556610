//go:build integration

package main_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Selam-Hotels/service-reservation/internal/application"
	"github.com/Selam-Hotels/service-reservation/internal/events"
	"github.com/Selam-Hotels/service-reservation/pkg/domain"
)

func futureDate(days int) string {
	return time.Now().UTC().AddDate(0, 0, days).Format(application.DateLayout)
}

// TestBookingCreated_PublishesEvent verifies the full write path: a booking
// created through the service lands in PostgreSQL and a booking.created
// CloudEvent appears on reservation.events.
func TestBookingCreated_PublishesEvent(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupReservationStack(t, infra.DB, infra.KafkaBrokers)
	defer stack.CleanupProducer()

	rm := seedRoom(t, stack, "101", 250000)
	guestID := seedGuest(t, stack)

	dto, err := stack.Bookings.Create(context.Background(), application.CreateBookingRequest{
		GuestID:  guestID,
		RoomID:   rm.ID,
		CheckIn:  futureDate(30),
		CheckOut: futureDate(33),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, dto.Nights)

	ce := consumeOneEvent(t, infra.KafkaBrokers, events.TopicReservationEvents,
		events.BookingCreated, 15*time.Second)

	var created events.BookingCreatedEvent
	require.NoError(t, ce.ParseData(&created))
	assert.Equal(t, dto.ID, created.BookingID)
	assert.Equal(t, rm.ID, created.RoomID)
	assert.Equal(t, 3, created.Nights)
}

// TestConcurrentCreate_DatabaseBackstop verifies the exclusion constraint
// catches a double booking even when the writers do not share an in-process
// lock registry, as with two service replicas.
func TestConcurrentCreate_DatabaseBackstop(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	replicaA := setupReservationStack(t, infra.DB, infra.KafkaBrokers)
	defer replicaA.CleanupProducer()
	replicaB := setupReservationStack(t, infra.DB, infra.KafkaBrokers)
	defer replicaB.CleanupProducer()

	rm := seedRoom(t, replicaA, "201", 250000)
	guestID := seedGuest(t, replicaA)

	req := application.CreateBookingRequest{
		GuestID:  guestID,
		RoomID:   rm.ID,
		CheckIn:  futureDate(10),
		CheckOut: futureDate(12),
	}

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, stack := range []*reservationStack{replicaA, replicaB} {
		wg.Add(1)
		go func(i int, stack *reservationStack) {
			defer wg.Done()
			_, errs[i] = stack.Bookings.Create(context.Background(), req)
		}(i, stack)
	}
	wg.Wait()

	var ok, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case domain.IsConflict(err):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok, "exactly one replica must win")
	assert.Equal(t, 1, conflicts)

	// The loser's dates are still free on a different room.
	available, err := replicaB.Availability.ComputeAvailable(context.Background(),
		time.Now().UTC().AddDate(0, 0, 10), time.Now().UTC().AddDate(0, 0, 12), uuid.Nil)
	require.NoError(t, err)
	assert.Empty(t, available, "the only room is taken")
}

// TestGuestEvents_MaintainReadModel verifies the consumer mirrors guest
// directory events into the local read model that booking creation checks.
func TestGuestEvents_MaintainReadModel(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupReservationStack(t, infra.DB, infra.KafkaBrokers)
	defer stack.CleanupProducer()
	defer func() { _ = stack.Consumer.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = stack.Consumer.Start(ctx) }()
	time.Sleep(3 * time.Second) // Wait for consumer group join.

	guestID := uuid.New()
	publishTestEvent(t, infra.KafkaBrokers, events.TopicGuestEvents,
		"service-guest", events.GuestRegistered, events.GuestRegisteredEvent{
			GuestID:    guestID,
			FullName:   "Abebe Bikila",
			Phone:      "+251911123456",
			OccurredAt: time.Now().UTC(),
		})

	require.Eventually(t, func() bool {
		exists, err := stack.GuestRepo.Exists(context.Background(), guestID)
		return err == nil && exists
	}, 15*time.Second, 200*time.Millisecond, "guest profile not mirrored")

	publishTestEvent(t, infra.KafkaBrokers, events.TopicGuestEvents,
		"service-guest", events.GuestRemoved, events.GuestRemovedEvent{
			GuestID:    guestID,
			OccurredAt: time.Now().UTC(),
		})

	require.Eventually(t, func() bool {
		exists, err := stack.GuestRepo.Exists(context.Background(), guestID)
		return err == nil && !exists
	}, 15*time.Second, 200*time.Millisecond, "guest removal not mirrored")

	// A removed guest cannot book.
	rm := seedRoom(t, stack, "301", 180000)
	_, err := stack.Bookings.Create(context.Background(), application.CreateBookingRequest{
		GuestID:  guestID,
		RoomID:   rm.ID,
		CheckIn:  futureDate(5),
		CheckOut: futureDate(7),
	})
	assert.True(t, domain.IsNotFound(err))
}

// TestSettlement_DefaultAmountAndStatus verifies the payment leg end to end:
// the default charge is nights times the rate, the derived status flips to
// Paid, and a payment.recorded event is published.
func TestSettlement_DefaultAmountAndStatus(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupReservationStack(t, infra.DB, infra.KafkaBrokers)
	defer stack.CleanupProducer()

	rm := seedRoom(t, stack, "401", 250000)
	guestID := seedGuest(t, stack)

	dto, err := stack.Bookings.Create(context.Background(), application.CreateBookingRequest{
		GuestID:  guestID,
		RoomID:   rm.ID,
		CheckIn:  futureDate(20),
		CheckOut: futureDate(23),
	})
	require.NoError(t, err)

	pay, err := stack.Settlements.Record(context.Background(), application.RecordPaymentRequest{
		BookingID: dto.ID,
		Method:    "cbe_birr",
		Status:    "paid",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(750000), pay.AmountCents)

	status, err := stack.Settlements.DerivedStatus(context.Background(), dto.ID)
	require.NoError(t, err)
	assert.Equal(t, application.SettlementPaid, status)

	_, err = stack.Settlements.Record(context.Background(), application.RecordPaymentRequest{
		BookingID: dto.ID,
		Method:    "cash",
		Status:    "paid",
	})
	assert.True(t, domain.IsConflict(err), "second active settlement rejected")

	ce := consumeOneEvent(t, infra.KafkaBrokers, events.TopicReservationEvents,
		events.PaymentRecorded, 15*time.Second)

	var recorded events.PaymentRecordedEvent
	require.NoError(t, ce.ParseData(&recorded))
	assert.Equal(t, dto.ID, recorded.BookingID)
	assert.Equal(t, int64(750000), recorded.AmountCents)
}

// TestSettlement_ZeroAmountCommits verifies a comped stay settles at zero
// all the way through the database, not just domain validation.
func TestSettlement_ZeroAmountCommits(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupReservationStack(t, infra.DB, infra.KafkaBrokers)
	defer stack.CleanupProducer()

	rm := seedRoom(t, stack, "501", 250000)
	guestID := seedGuest(t, stack)

	dto, err := stack.Bookings.Create(context.Background(), application.CreateBookingRequest{
		GuestID:  guestID,
		RoomID:   rm.ID,
		CheckIn:  futureDate(40),
		CheckOut: futureDate(42),
	})
	require.NoError(t, err)

	zero := int64(0)
	pay, err := stack.Settlements.Record(context.Background(), application.RecordPaymentRequest{
		BookingID:   dto.ID,
		Method:      "cash",
		Status:      "paid",
		AmountCents: &zero,
		Description: "comped stay",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), pay.AmountCents)

	got, err := stack.Settlements.GetByBooking(context.Background(), dto.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.AmountCents)
}

// TestConcurrentRecord_DatabaseBackstop verifies the partial unique index on
// active payments catches a double settlement when the writers do not share
// an in-process lock registry, as with two service replicas.
func TestConcurrentRecord_DatabaseBackstop(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	replicaA := setupReservationStack(t, infra.DB, infra.KafkaBrokers)
	defer replicaA.CleanupProducer()
	replicaB := setupReservationStack(t, infra.DB, infra.KafkaBrokers)
	defer replicaB.CleanupProducer()

	rm := seedRoom(t, replicaA, "601", 250000)
	guestID := seedGuest(t, replicaA)

	dto, err := replicaA.Bookings.Create(context.Background(), application.CreateBookingRequest{
		GuestID:  guestID,
		RoomID:   rm.ID,
		CheckIn:  futureDate(50),
		CheckOut: futureDate(52),
	})
	require.NoError(t, err)

	req := application.RecordPaymentRequest{
		BookingID: dto.ID,
		Method:    "cash",
		Status:    "paid",
	}

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, stack := range []*reservationStack{replicaA, replicaB} {
		wg.Add(1)
		go func(i int, stack *reservationStack) {
			defer wg.Done()
			_, errs[i] = stack.Settlements.Record(context.Background(), req)
		}(i, stack)
	}
	wg.Wait()

	var ok, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case domain.IsConflict(err):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok, "exactly one replica must win")
	assert.Equal(t, 1, conflicts)
}
