package application

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Selam-Hotels/service-reservation/internal/domain/booking"
	"github.com/Selam-Hotels/service-reservation/internal/domain/payment"
	"github.com/Selam-Hotels/service-reservation/internal/domain/room"
	"github.com/Selam-Hotels/service-reservation/pkg/domain"
	"github.com/Selam-Hotels/service-reservation/pkg/kafka"
)

// In-memory repository fakes. All are safe for concurrent use so service
// tests can exercise the locking paths with real goroutines.

type fakeRoomRepo struct {
	mu    sync.Mutex
	rooms map[uuid.UUID]*room.Room
}

func newFakeRoomRepo() *fakeRoomRepo {
	return &fakeRoomRepo{rooms: make(map[uuid.UUID]*room.Room)}
}

func (r *fakeRoomRepo) FindByID(_ context.Context, id uuid.UUID) (*room.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rm, ok := r.rooms[id]; ok {
		return rm, nil
	}
	return nil, domain.NewNotFoundError("room", id.String())
}

func (r *fakeRoomRepo) FindByNumber(_ context.Context, number string) (*room.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rm := range r.rooms {
		if rm.Number() == number {
			return rm, nil
		}
	}
	return nil, domain.NewNotFoundError("room", number)
}

func (r *fakeRoomRepo) ListAll(_ context.Context) ([]*room.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*room.Room, 0, len(r.rooms))
	for _, rm := range r.rooms {
		out = append(out, rm)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number() < out[j].Number() })
	return out, nil
}

func (r *fakeRoomRepo) Save(_ context.Context, rm *room.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.rooms {
		if existing.Number() == rm.Number() {
			return domain.NewConflictError("room number already exists")
		}
	}
	r.rooms[rm.ID()] = rm
	return nil
}

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*booking.Booking
	order    []uuid.UUID
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[uuid.UUID]*booking.Booking)}
}

func (r *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.bookings[id]; ok {
		return b, nil
	}
	return nil, domain.NewNotFoundError("booking", id.String())
}

func (r *fakeBookingRepo) ListAll(_ context.Context, page, limit int) ([]*booking.Booking, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := int64(len(r.order))
	start := (page - 1) * limit
	if start >= len(r.order) {
		return nil, total, nil
	}
	end := start + limit
	if end > len(r.order) {
		end = len(r.order)
	}
	var out []*booking.Booking
	// Newest first.
	for i := len(r.order) - 1 - start; i >= len(r.order)-end; i-- {
		out = append(out, r.bookings[r.order[i]])
	}
	return out, total, nil
}

func (r *fakeBookingRepo) FindOverlapping(_ context.Context, checkIn, checkOut time.Time, excludeID uuid.UUID) ([]*booking.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*booking.Booking
	for _, b := range r.bookings {
		if b.ID() == excludeID || !b.IsActive() {
			continue
		}
		if b.Overlaps(checkIn, checkOut) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) ExistsOverlap(_ context.Context, roomID uuid.UUID, checkIn, checkOut time.Time, excludeID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.ID() == excludeID || !b.IsActive() || b.RoomID() != roomID {
			continue
		}
		if b.Overlaps(checkIn, checkOut) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeBookingRepo) Save(_ context.Context, b *booking.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bookings[b.ID()] = b
	r.order = append(r.order, b.ID())
	return nil
}

func (r *fakeBookingRepo) Update(_ context.Context, b *booking.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[b.ID()]; !ok {
		return domain.NewNotFoundError("booking", b.ID().String())
	}
	r.bookings[b.ID()] = b
	return nil
}

type fakePaymentRepo struct {
	mu       sync.Mutex
	payments []*payment.Payment
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{}
}

func (r *fakePaymentRepo) FindByID(_ context.Context, id uuid.UUID) (*payment.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.payments {
		if p.ID() == id {
			return p, nil
		}
	}
	return nil, domain.NewNotFoundError("payment", id.String())
}

func (r *fakePaymentRepo) FindByBookingID(_ context.Context, bookingID uuid.UUID) (*payment.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.payments) - 1; i >= 0; i-- {
		if r.payments[i].BookingID() == bookingID {
			return r.payments[i], nil
		}
	}
	return nil, domain.NewNotFoundError("payment", bookingID.String())
}

func (r *fakePaymentRepo) FindActiveByBookingID(_ context.Context, bookingID uuid.UUID) (*payment.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.payments) - 1; i >= 0; i-- {
		p := r.payments[i]
		if p.BookingID() == bookingID && p.Active() {
			return p, nil
		}
	}
	return nil, domain.NewNotFoundError("payment", bookingID.String())
}

func (r *fakePaymentRepo) ListAll(_ context.Context, page, limit int) ([]*payment.Payment, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := int64(len(r.payments))
	start := (page - 1) * limit
	if start >= len(r.payments) {
		return nil, total, nil
	}
	end := start + limit
	if end > len(r.payments) {
		end = len(r.payments)
	}
	var out []*payment.Payment
	for i := len(r.payments) - 1 - start; i >= len(r.payments)-end; i-- {
		out = append(out, r.payments[i])
	}
	return out, total, nil
}

func (r *fakePaymentRepo) GetRevenueStats(_ context.Context) (int64, map[string]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var totalPaid int64
	counts := make(map[string]int64)
	for _, p := range r.payments {
		counts[string(p.Status())]++
		if p.IsPaid() {
			totalPaid += p.AmountCents()
		}
	}
	return totalPaid, counts, nil
}

func (r *fakePaymentRepo) Save(_ context.Context, p *payment.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payments = append(r.payments, p)
	return nil
}

type fakeDirectory struct {
	mu     sync.Mutex
	guests map[uuid.UUID]bool
}

func newFakeDirectory(ids ...uuid.UUID) *fakeDirectory {
	d := &fakeDirectory{guests: make(map[uuid.UUID]bool)}
	for _, id := range ids {
		d.guests[id] = true
	}
	return d
}

func (d *fakeDirectory) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.guests[id], nil
}

type publishedEvent struct {
	Topic string
	Event kafka.CloudEvent
}

// recordingPublisher captures published events for assertions.
type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *recordingPublisher) PublishEvent(_ context.Context, topic string, event kafka.CloudEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{Topic: topic, Event: event})
	return nil
}

func (p *recordingPublisher) Types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Event.Type
	}
	return out
}
