package booking_test

import (
    "context"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/restaurant-table-reservation/internal/booking"
    "github.com/iliyamo/restaurant-table-reservation/internal/memstore"
    "github.com/iliyamo/restaurant-table-reservation/internal/model"
)

func times(t *testing.T, ss ...string) []model.TimeOfDay {
    t.Helper()
    out := make([]model.TimeOfDay, 0, len(ss))
    for _, s := range ss {
        out = append(out, at(t, s))
    }
    return out
}

func TestSlotsGridAndCutoffs(t *testing.T) {
    st := memstore.New()
    seedAllWeek(t, st, "17:00", "22:00", "21:00")
    addTable(t, st, 1, 2, 4, false)
    svc := newService(st)

    // 90 minute turns stop the grid at 20:30 so the window still
    // ends by closing; last seating would have allowed 21:00.
    got, err := svc.CheckAvailability(context.Background(), mustDate(t, friday), 2, 90)
    require.NoError(t, err)
    require.NotEmpty(t, got)
    assert.Equal(t, at(t, "17:00"), got[0])
    assert.Equal(t, at(t, "20:30"), got[len(got)-1])
    assert.Len(t, got, 15)

    // 60 minute turns run all the way to last seating.
    got, err = svc.CheckAvailability(context.Background(), mustDate(t, friday), 2, 60)
    require.NoError(t, err)
    assert.Equal(t, at(t, "21:00"), got[len(got)-1])
    assert.Len(t, got, 17)
}

func TestSlotsSkipBookedWindows(t *testing.T) {
    st := memstore.New()
    seedAllWeek(t, st, "17:00", "22:00", "21:00")
    addTable(t, st, 1, 2, 4, false)
    cust := addCustomer(t, st, "mara")
    svc := newService(st)

    book(t, svc, cust, friday, "18:00", 3, 90)

    // With the single table booked for [18:00, 19:30), a 90
    // minute party can only start once the window clears.
    got, err := svc.CheckAvailability(context.Background(), mustDate(t, friday), 2, 90)
    require.NoError(t, err)
    assert.Equal(t, times(t, "19:30", "19:45", "20:00", "20:15", "20:30"), got)
}

func TestSlotsGranularityPolicy(t *testing.T) {
    st := memstore.New()
    seedAllWeek(t, st, "17:00", "22:00", "21:00")
    addTable(t, st, 1, 2, 4, false)
    svc := booking.NewService(st, booking.Policy{SlotGranularityMinutes: 30}, nil)

    got, err := svc.CheckAvailability(context.Background(), mustDate(t, friday), 2, 90)
    require.NoError(t, err)
    assert.Equal(t, times(t, "17:00", "17:30", "18:00", "18:30", "19:00",
        "19:30", "20:00", "20:30"), got)
}

func TestSlotsClosedAndInvalid(t *testing.T) {
    st := memstore.New()
    seedDay(t, st, time.Friday, "17:00", "22:00", "21:00")
    addTable(t, st, 1, 2, 4, false)
    svc := newService(st)

    _, err := svc.CheckAvailability(context.Background(), mustDate(t, "2026-09-05"), 2, 90)
    var closed *booking.ClosedError
    require.ErrorAs(t, err, &closed)

    _, err = svc.CheckAvailability(context.Background(), mustDate(t, friday), 0, 90)
    var verr *booking.ValidationError
    require.ErrorAs(t, err, &verr)
}

func TestSlotsNoFittingTableMeansNoSlots(t *testing.T) {
    st := memstore.New()
    seedAllWeek(t, st, "17:00", "22:00", "21:00")
    addTable(t, st, 1, 2, 4, false)
    svc := newService(st)

    got, err := svc.CheckAvailability(context.Background(), mustDate(t, friday), 9, 90)
    require.NoError(t, err)
    assert.Empty(t, got)
}

func TestSlotStreamIsLazy(t *testing.T) {
    st := memstore.New()
    seedAllWeek(t, st, "17:00", "22:00", "21:00")
    addTable(t, st, 1, 2, 4, false)
    gen := booking.NewSlotGenerator(st, booking.Policy{})

    stream, err := gen.Stream(context.Background(), mustDate(t, friday), 2, 90)
    require.NoError(t, err)

    // Pull two values only; the rest of the grid stays unwalked.
    first, ok := stream.Next()
    require.True(t, ok)
    assert.Equal(t, at(t, "17:00"), first)
    second, ok := stream.Next()
    require.True(t, ok)
    assert.Equal(t, at(t, "17:15"), second)
}

func TestCheckSlot(t *testing.T) {
    st := memstore.New()
    seedAllWeek(t, st, "17:00", "22:00", "21:00")
    addTable(t, st, 1, 2, 4, false)
    cust := addCustomer(t, st, "otis")
    svc := newService(st)

    require.NoError(t, svc.CheckSlot(context.Background(), mustDate(t, friday), at(t, "18:00"), 2, 90))

    book(t, svc, cust, friday, "18:00", 3, 90)

    err := svc.CheckSlot(context.Background(), mustDate(t, friday), at(t, "18:30"), 2, 60)
    var noAvail *booking.NoAvailabilityError
    require.ErrorAs(t, err, &noAvail)

    err = svc.CheckSlot(context.Background(), mustDate(t, friday), at(t, "16:00"), 2, 60)
    var closed *booking.ClosedError
    require.ErrorAs(t, err, &closed)
}
