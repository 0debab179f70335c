// Package handler contains the HTTP layer: thin echo handlers that
// bind JSON, call the reservation engine or the repositories, and
// translate outcomes into status codes.  All domain decisions live in
// internal/booking; nothing here inspects schedules or availability
// itself.
package handler

import (
    "errors"   // errors drives the typed-error mapping
    "log"      // log records unexpected failures before they become 500s
    "net/http" // http provides status code constants
    "strconv"  // strconv parses path parameters

    "github.com/labstack/echo/v4" // echo is the web framework used for this project

    "github.com/iliyamo/restaurant-table-reservation/internal/booking"
    "github.com/iliyamo/restaurant-table-reservation/internal/repository"
)

// writeError maps an error onto the HTTP taxonomy and writes the JSON
// body.  Every caller-visible failure funnels through here so the
// mapping lives in exactly one place:
//
//    ValidationError        -> 400
//    NotFoundError          -> 404
//    NoAvailabilityError    -> 409
//    ClosedError            -> 422
//    InvalidTransitionError -> 422
//
// Repository sentinels that escape the store adapter map to 404/409.
// Anything else is an internal error; the cause is logged, not leaked.
func writeError(c echo.Context, err error) error {
    var (
        vErr  *booking.ValidationError
        nfErr *booking.NotFoundError
        naErr *booking.NoAvailabilityError
        clErr *booking.ClosedError
        itErr *booking.InvalidTransitionError
    )
    switch {
    case errors.As(err, &vErr):
        return c.JSON(http.StatusBadRequest, echo.Map{"error": vErr.Error()})
    case errors.As(err, &nfErr):
        return c.JSON(http.StatusNotFound, echo.Map{"error": nfErr.Error()})
    case errors.As(err, &naErr):
        return c.JSON(http.StatusConflict, echo.Map{"error": naErr.Error()})
    case errors.As(err, &clErr):
        return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": clErr.Error()})
    case errors.As(err, &itErr):
        return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": itErr.Error()})
    case errors.Is(err, repository.ErrNotFound):
        return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
    case errors.Is(err, repository.ErrConflict):
        return c.JSON(http.StatusConflict, echo.Map{"error": "conflict with existing record"})
    }
    log.Printf("handler: internal error: %v", err)
    return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}

// pathID parses the numeric :id path parameter.
func pathID(c echo.Context) (uint64, error) {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return 0, &booking.ValidationError{Field: "id", Reason: "must be a positive integer"}
    }
    return id, nil
}
