package booking

import (
    "context"
    "time"

    "github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// Window is the effective service window of one date after
// override resolution.  Open <= LastSeating < Close always holds
// for a resolved window; hours management enforces it on write.
type Window struct {
    Open        model.TimeOfDay
    Close       model.TimeOfDay
    LastSeating model.TimeOfDay
}

// HoursResolver turns a calendar date into the window the
// restaurant actually serves that day.  A date-specific override
// wins completely over the weekly row: when an override exists
// the weekly schedule contributes nothing, whether the override
// opens, narrows or closes the day.
type HoursResolver struct {
    store Store
}

// NewHoursResolver returns a resolver over the given store.
func NewHoursResolver(store Store) *HoursResolver {
    return &HoursResolver{store: store}
}

// Resolve returns the effective window for the date, or nil when
// the restaurant is closed all day.  Closure is not an error;
// only storage failures are.
func (r *HoursResolver) Resolve(ctx context.Context, date time.Time) (*Window, error) {
    special, err := r.store.SpecialHoursFor(ctx, model.DateOnly(date))
    if err != nil {
        return nil, err
    }
    if special != nil {
        if special.IsClosed || special.OpenTime == nil || special.CloseTime == nil {
            return nil, nil
        }
        w := &Window{Open: *special.OpenTime, Close: *special.CloseTime}
        if special.LastSeating != nil {
            w.LastSeating = *special.LastSeating
        } else {
            w.LastSeating = w.Close
        }
        return w, nil
    }

    weekly, err := r.store.WeeklyHoursFor(ctx, model.DateOnly(date).Weekday())
    if err != nil {
        return nil, err
    }
    if weekly == nil {
        return nil, nil
    }
    return &Window{
        Open:        weekly.OpenTime,
        Close:       weekly.CloseTime,
        LastSeating: weekly.LastSeating,
    }, nil
}

// ValidateStart resolves the date and checks that a reservation
// starting at start for durationMinutes fits the window: the
// start is no earlier than opening, no later than last seating,
// and the whole occupancy window ends by closing.  On success the
// resolved window is returned; every failure is a ClosedError.
func (r *HoursResolver) ValidateStart(ctx context.Context, date time.Time, start model.TimeOfDay, durationMinutes int) (*Window, error) {
    w, err := r.Resolve(ctx, date)
    if err != nil {
        return nil, err
    }
    if w == nil {
        return nil, &ClosedError{Date: date, Reason: "no operating hours for this date"}
    }
    if start < w.Open {
        return nil, &ClosedError{Date: date, Reason: "requested time is before opening at " + w.Open.String()}
    }
    if start > w.LastSeating {
        return nil, &ClosedError{Date: date, Reason: "requested time is after last seating at " + w.LastSeating.String()}
    }
    if start.Add(durationMinutes) > w.Close {
        return nil, &ClosedError{Date: date, Reason: "party would stay past closing at " + w.Close.String()}
    }
    return w, nil
}

// ValidateWindowBounds checks an open/close/last-seating triple
// for internal consistency.  Hours management calls it before any
// weekly or special row is written so that Resolve never has to
// doubt stored rows.
func ValidateWindowBounds(open, close, lastSeating model.TimeOfDay) error {
    if !open.InDay() || !close.InDay() || !lastSeating.InDay() {
        return &ValidationError{Field: "hours", Reason: "times must fall within the day"}
    }
    if close <= open {
        return &ValidationError{Field: "close_time", Reason: "closing time must be after opening time"}
    }
    if lastSeating <= open || lastSeating >= close {
        return &ValidationError{Field: "last_seating_time", Reason: "last seating must fall between opening and closing"}
    }
    return nil
}

// ValidateOverrideBounds checks a special-hours window.  Overrides may
// omit the last seating (Resolve then uses the closing time) or set it
// equal to the close, so the bound is looser than the weekly rule.
func ValidateOverrideBounds(open, close model.TimeOfDay, lastSeating *model.TimeOfDay) error {
    if !open.InDay() || !close.InDay() {
        return &ValidationError{Field: "hours", Reason: "times must fall within the day"}
    }
    if close <= open {
        return &ValidationError{Field: "close_time", Reason: "closing time must be after opening time"}
    }
    if lastSeating != nil {
        if !lastSeating.InDay() {
            return &ValidationError{Field: "last_seating_time", Reason: "times must fall within the day"}
        }
        if *lastSeating <= open || *lastSeating > close {
            return &ValidationError{Field: "last_seating_time", Reason: "last seating must fall between opening and closing"}
        }
    }
    return nil
}
