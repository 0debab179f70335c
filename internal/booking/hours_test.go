package booking_test

import (
    "context"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/restaurant-table-reservation/internal/booking"
    "github.com/iliyamo/restaurant-table-reservation/internal/memstore"
    "github.com/iliyamo/restaurant-table-reservation/internal/model"
)

func TestResolveWeeklyFallback(t *testing.T) {
    st := memstore.New()
    seedDay(t, st, mustDate(t, friday).Weekday(), "17:00", "22:00", "21:00")
    r := booking.NewHoursResolver(st)

    w, err := r.Resolve(context.Background(), mustDate(t, friday))
    require.NoError(t, err)
    require.NotNil(t, w)
    assert.Equal(t, at(t, "17:00"), w.Open)
    assert.Equal(t, at(t, "22:00"), w.Close)
    assert.Equal(t, at(t, "21:00"), w.LastSeating)

    // Saturday has no row, so the restaurant is closed.
    w, err = r.Resolve(context.Background(), mustDate(t, "2026-09-05"))
    require.NoError(t, err)
    assert.Nil(t, w)
}

func TestResolveSpecialOverridesWeekly(t *testing.T) {
    st := memstore.New()
    seedAllWeek(t, st, "17:00", "22:00", "21:00")

    brunchOpen, brunchClose, brunchLast := at(t, "11:00"), at(t, "15:00"), at(t, "14:00")
    require.NoError(t, st.UpsertSpecialHours(context.Background(), &model.SpecialHours{
        Date:        mustDate(t, friday),
        OpenTime:    &brunchOpen,
        CloseTime:   &brunchClose,
        LastSeating: &brunchLast,
    }))
    r := booking.NewHoursResolver(st)

    // The override replaces the weekly window wholesale even
    // though the date is not closed.
    w, err := r.Resolve(context.Background(), mustDate(t, friday))
    require.NoError(t, err)
    require.NotNil(t, w)
    assert.Equal(t, brunchOpen, w.Open)
    assert.Equal(t, brunchClose, w.Close)
    assert.Equal(t, brunchLast, w.LastSeating)

    // Evening hours that the weekly row would allow are now out.
    _, err = r.ValidateStart(context.Background(), mustDate(t, friday), at(t, "18:00"), 90)
    var closed *booking.ClosedError
    require.ErrorAs(t, err, &closed)
}

func TestResolveSpecialClosedBeatsWeekly(t *testing.T) {
    st := memstore.New()
    seedAllWeek(t, st, "17:00", "22:00", "21:00")
    require.NoError(t, st.UpsertSpecialHours(context.Background(), &model.SpecialHours{
        Date:     mustDate(t, friday),
        IsClosed: true,
    }))
    r := booking.NewHoursResolver(st)

    w, err := r.Resolve(context.Background(), mustDate(t, friday))
    require.NoError(t, err)
    assert.Nil(t, w)

    // The day after is untouched.
    w, err = r.Resolve(context.Background(), mustDate(t, "2026-09-05"))
    require.NoError(t, err)
    assert.NotNil(t, w)
}

func TestValidateStartBounds(t *testing.T) {
    st := memstore.New()
    seedAllWeek(t, st, "17:00", "22:00", "21:00")
    r := booking.NewHoursResolver(st)

    cases := []struct {
        name     string
        start    string
        duration int
        ok       bool
    }{
        {"at opening", "17:00", 90, true},
        {"before opening", "16:30", 60, false},
        {"at last seating", "21:00", 60, true},
        {"after last seating", "21:15", 30, false},
        {"runs past closing", "20:30", 120, false},
        {"ends exactly at closing", "20:30", 90, true},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            _, err := r.ValidateStart(context.Background(), mustDate(t, friday), at(t, tc.start), tc.duration)
            if tc.ok {
                assert.NoError(t, err)
                return
            }
            var closed *booking.ClosedError
            assert.ErrorAs(t, err, &closed)
        })
    }
}

func TestValidateWindowBounds(t *testing.T) {
    cases := []struct {
        name             string
        open, close, last string
        ok               bool
    }{
        {"well formed", "17:00", "22:00", "21:00", true},
        {"close before open", "17:00", "16:00", "15:00", false},
        {"close equals open", "17:00", "17:00", "17:00", false},
        {"last seating at open", "17:00", "22:00", "17:00", false},
        {"last seating at close", "17:00", "22:00", "22:00", false},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            err := booking.ValidateWindowBounds(at(t, tc.open), at(t, tc.close), at(t, tc.last))
            if tc.ok {
                assert.NoError(t, err)
                return
            }
            var verr *booking.ValidationError
            assert.ErrorAs(t, err, &verr)
        })
    }
}
