package handler // read-only availability endpoints

import (
    "errors"   // errors classifies the point-check outcome
    "net/http" // http defines status code constants
    "strconv"  // strconv parses query parameters

    "github.com/labstack/echo/v4" // echo framework supplies request context

    "github.com/iliyamo/restaurant-table-reservation/internal/booking"
    "github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// AvailabilityHandler answers "when could we come" questions.  Both
// endpoints are lock-free snapshots and sit behind the Redis response
// cache; booking re-verifies under locks, so a stale answer can cost a
// guest a retry but never a double-booked table.
type AvailabilityHandler struct {
    Svc *booking.Service
}

// queryInt parses an optional integer query parameter, returning def
// when absent.
func queryInt(c echo.Context, name string, def int) (int, error) {
    raw := c.QueryParam(name)
    if raw == "" {
        return def, nil
    }
    n, err := strconv.Atoi(raw)
    if err != nil {
        return 0, &booking.ValidationError{Field: name, Reason: "must be an integer"}
    }
    return n, nil
}

// Slots handles GET /availability?date=&party_size=&duration=.  The
// response lists every bookable start time on the policy grid.
func (h *AvailabilityHandler) Slots(c echo.Context) error {
    date, err := model.ParseDate(c.QueryParam("date"))
    if err != nil {
        return writeError(c, &booking.ValidationError{Field: "date", Reason: "must be YYYY-MM-DD"})
    }
    party, err := queryInt(c, "party_size", 0)
    if err != nil {
        return writeError(c, err)
    }
    duration, err := queryInt(c, "duration", 0)
    if err != nil {
        return writeError(c, err)
    }
    slots, err := h.Svc.CheckAvailability(c.Request().Context(), date, party, duration)
    if err != nil {
        return writeError(c, err)
    }
    if slots == nil {
        slots = []model.TimeOfDay{} // fully booked day renders as an empty list, not null
    }
    return c.JSON(http.StatusOK, echo.Map{
        "date":       model.FormatDate(date),
        "party_size": party,
        "slots":      slots,
    })
}

// Check handles GET /availability/check?date=&time=&party_size=&duration=
// and answers the point question for one start time.  Unavailability is
// a 200 with available=false and the reason, not an error: the guest
// asked a question and got an answer.
func (h *AvailabilityHandler) Check(c echo.Context) error {
    date, err := model.ParseDate(c.QueryParam("date"))
    if err != nil {
        return writeError(c, &booking.ValidationError{Field: "date", Reason: "must be YYYY-MM-DD"})
    }
    start, err := model.ParseTimeOfDay(c.QueryParam("time"))
    if err != nil {
        return writeError(c, &booking.ValidationError{Field: "time", Reason: "must be HH:MM"})
    }
    party, err := queryInt(c, "party_size", 0)
    if err != nil {
        return writeError(c, err)
    }
    duration, err := queryInt(c, "duration", 0)
    if err != nil {
        return writeError(c, err)
    }
    err = h.Svc.CheckSlot(c.Request().Context(), date, start, party, duration)
    if err == nil {
        return c.JSON(http.StatusOK, echo.Map{"available": true})
    }
    var (
        clErr *booking.ClosedError
        naErr *booking.NoAvailabilityError
    )
    if errors.As(err, &clErr) || errors.As(err, &naErr) {
        return c.JSON(http.StatusOK, echo.Map{"available": false, "reason": err.Error()})
    }
    return writeError(c, err)
}
