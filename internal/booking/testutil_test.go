package booking_test

import (
    "context"
    "sync"
    "testing"
    "time"

    "github.com/stretchr/testify/require"

    "github.com/iliyamo/restaurant-table-reservation/internal/booking"
    "github.com/iliyamo/restaurant-table-reservation/internal/memstore"
    "github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// friday is the canonical test date; 2026-09-04 falls on a
// Friday, which the weekday-sensitive tests rely on.
const friday = "2026-09-04"

func mustDate(t *testing.T, s string) time.Time {
    t.Helper()
    d, err := model.ParseDate(s)
    require.NoError(t, err)
    return d
}

func at(t *testing.T, s string) model.TimeOfDay {
    t.Helper()
    v, err := model.ParseTimeOfDay(s)
    require.NoError(t, err)
    return v
}

// seedAllWeek opens every weekday with the same window.
func seedAllWeek(t *testing.T, st *memstore.Store, open, close, last string) {
    t.Helper()
    for day := time.Sunday; day <= time.Saturday; day++ {
        seedDay(t, st, day, open, close, last)
    }
}

func seedDay(t *testing.T, st *memstore.Store, day time.Weekday, open, close, last string) {
    t.Helper()
    err := st.UpsertWeeklyHours(context.Background(), &model.OperatingHours{
        DayOfWeek:   day,
        OpenTime:    at(t, open),
        CloseTime:   at(t, close),
        LastSeating: at(t, last),
    })
    require.NoError(t, err)
}

// addTable creates a table and returns its ID.
func addTable(t *testing.T, st *memstore.Store, number, min, max int, shared bool) uint64 {
    t.Helper()
    tb := &model.Table{
        TableNumber: number,
        MinCapacity: min,
        MaxCapacity: max,
        IsShared:    shared,
        IsActive:    true,
    }
    require.NoError(t, st.CreateTable(context.Background(), tb))
    return tb.ID
}

// addCustomer creates a bare customer and returns its ID.
func addCustomer(t *testing.T, st *memstore.Store, name string) uint64 {
    t.Helper()
    email := name + "@example.com"
    c := &model.Customer{Name: name, Email: &email}
    require.NoError(t, st.CreateCustomer(context.Background(), c))
    return c.ID
}

// newService builds a service over the store with stock policy
// and no event publisher.
func newService(st *memstore.Store) *booking.Service {
    return booking.NewService(st, booking.Policy{}, nil)
}

// recorder collects published events for assertions.
type recorder struct {
    mu      sync.Mutex
    created []uint64
    changes []string
}

func (r *recorder) ReservationCreated(res *model.Reservation, tableIDs []uint64) {
    r.mu.Lock()
    defer r.mu.Unlock()
    r.created = append(r.created, res.ID)
}

func (r *recorder) ReservationStatusChanged(res *model.Reservation, previous model.ReservationStatus) {
    r.mu.Lock()
    defer r.mu.Unlock()
    r.changes = append(r.changes, string(previous)+">"+string(res.Status))
}

// book is the common happy-path booking call.
func book(t *testing.T, svc *booking.Service, customerID uint64, date string, start string, party, duration int) (*model.Reservation, booking.Candidate) {
    t.Helper()
    res, cand, err := svc.CreateAndAssign(context.Background(), booking.CreateRequest{
        CustomerID:      customerID,
        PartySize:       party,
        Date:            mustDate(t, date),
        StartTime:       at(t, start),
        DurationMinutes: duration,
    })
    require.NoError(t, err)
    require.NotNil(t, res)
    return res, cand
}
