package booking_test

import (
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/restaurant-table-reservation/internal/booking"
    "github.com/iliyamo/restaurant-table-reservation/internal/model"
)

func TestTransitionMatrix(t *testing.T) {
    allowed := map[model.ReservationStatus][]model.ReservationStatus{
        model.StatusPending:   {model.StatusConfirmed, model.StatusCancelled},
        model.StatusConfirmed: {model.StatusSeated, model.StatusCancelled, model.StatusNoShow},
        model.StatusSeated:    {model.StatusCompleted, model.StatusNoShow},
        model.StatusCompleted: {},
        model.StatusCancelled: {},
        model.StatusNoShow:    {},
    }
    all := []model.ReservationStatus{
        model.StatusPending, model.StatusConfirmed, model.StatusSeated,
        model.StatusCompleted, model.StatusCancelled, model.StatusNoShow,
    }

    for from, tos := range allowed {
        ok := make(map[model.ReservationStatus]bool, len(tos))
        for _, to := range tos {
            ok[to] = true
        }
        for _, to := range all {
            if ok[to] {
                assert.True(t, booking.CanTransition(from, to), "%s -> %s should be allowed", from, to)
                assert.NoError(t, booking.ValidateTransition(from, to))
                continue
            }
            assert.False(t, booking.CanTransition(from, to), "%s -> %s should be rejected", from, to)
            var inv *booking.InvalidTransitionError
            require.ErrorAs(t, booking.ValidateTransition(from, to), &inv)
            assert.Equal(t, from, inv.From)
            assert.Equal(t, to, inv.To)
        }
    }
}

func TestTerminalStates(t *testing.T) {
    assert.False(t, booking.Terminal(model.StatusPending))
    assert.False(t, booking.Terminal(model.StatusConfirmed))
    assert.False(t, booking.Terminal(model.StatusSeated))
    assert.True(t, booking.Terminal(model.StatusCompleted))
    assert.True(t, booking.Terminal(model.StatusCancelled))
    assert.True(t, booking.Terminal(model.StatusNoShow))
}

func TestValidateTransitionUnknownStatus(t *testing.T) {
    var verr *booking.ValidationError
    require.ErrorAs(t, booking.ValidateTransition(model.StatusPending, "checked_in"), &verr)
    assert.Equal(t, "status", verr.Field)
}
