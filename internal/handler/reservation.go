package handler // reservation intake and lifecycle endpoints

import (
    "net/http" // http defines status code constants
    "strings"  // strings trims intake fields
    "time"     // time carries parsed reservation dates

    "github.com/labstack/echo/v4" // echo framework supplies request context

    "github.com/iliyamo/restaurant-table-reservation/internal/booking"
    "github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// ReservationHandler serves intake and the reservation lifecycle.  It
// talks only to the engine service; table selection, conflict detection
// and transition rules all happen behind that boundary.
type ReservationHandler struct {
    Svc *booking.Service
}

// reservationResponse flattens a reservation plus its table IDs for
// JSON.  Table numbers ride along when the caller has them (intake and
// update know the seated candidate).
func reservationResponse(res *model.Reservation, tableIDs []uint64, tableNumbers []int) echo.Map {
    m := echo.Map{
        "id":               res.ID,
        "customer_id":      res.CustomerID,
        "party_size":       res.PartySize,
        "date":             model.FormatDate(res.Date),
        "start_time":       res.StartTime,
        "end_time":         res.EndTime(),
        "duration_minutes": res.DurationMinutes,
        "status":           res.Status,
        "special_requests": res.SpecialRequests,
        "created_at":       res.CreatedAt,
        "updated_at":       res.UpdatedAt,
    }
    if tableIDs != nil {
        m["table_ids"] = tableIDs
    }
    if tableNumbers != nil {
        m["table_numbers"] = tableNumbers
    }
    return m
}

// createBody is the intake payload: who is coming, when, and how to
// reach them.
type createBody struct {
    CustomerName    string  `json:"customer_name"`
    CustomerEmail   string  `json:"customer_email"`
    CustomerPhone   string  `json:"customer_phone"`
    PartySize       int     `json:"party_size"`
    Date            string  `json:"date"`
    Time            string  `json:"time"`
    DurationMinutes int     `json:"duration_minutes"`
    SpecialRequests *string `json:"special_requests"`
}

// Create handles POST /reservations: resolve the guest to a customer
// record, then book and seat the party atomically.  The 201 response
// names the assigned tables.
func (h *ReservationHandler) Create(c echo.Context) error {
    var body createBody
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if body.PartySize < 1 {
        return writeError(c, &booking.ValidationError{Field: "party_size", Reason: "must be at least 1"})
    }
    date, err := model.ParseDate(body.Date)
    if err != nil {
        return writeError(c, &booking.ValidationError{Field: "date", Reason: "must be YYYY-MM-DD"})
    }
    start, err := model.ParseTimeOfDay(body.Time)
    if err != nil {
        return writeError(c, &booking.ValidationError{Field: "time", Reason: "must be HH:MM"})
    }
    ctx := c.Request().Context()
    customer, err := h.Svc.ResolveCustomer(ctx, body.CustomerName, body.CustomerEmail, body.CustomerPhone, body.PartySize)
    if err != nil {
        return writeError(c, err)
    }
    var special *string
    if body.SpecialRequests != nil && strings.TrimSpace(*body.SpecialRequests) != "" {
        s := strings.TrimSpace(*body.SpecialRequests)
        special = &s
    }
    res, cand, err := h.Svc.CreateAndAssign(ctx, booking.CreateRequest{
        CustomerID:      customer.ID,
        PartySize:       body.PartySize,
        Date:            date,
        StartTime:       start,
        DurationMinutes: body.DurationMinutes,
        SpecialRequests: special,
    })
    if err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusCreated, reservationResponse(res, cand.TableIDs, cand.TableNumbers))
}

// List handles GET /reservations with optional ?date= and ?status=
// filters.
func (h *ReservationHandler) List(c echo.Context) error {
    var (
        datePtr   *time.Time
        statusPtr *model.ReservationStatus
    )
    if raw := c.QueryParam("date"); raw != "" {
        d, err := model.ParseDate(raw)
        if err != nil {
            return writeError(c, &booking.ValidationError{Field: "date", Reason: "must be YYYY-MM-DD"})
        }
        datePtr = &d
    }
    if raw := c.QueryParam("status"); raw != "" {
        s := model.ReservationStatus(raw)
        statusPtr = &s
    }
    reservations, err := h.Svc.ListReservations(c.Request().Context(), datePtr, statusPtr)
    if err != nil {
        return writeError(c, err)
    }
    out := make([]echo.Map, 0, len(reservations))
    for i := range reservations {
        out = append(out, reservationResponse(&reservations[i], nil, nil))
    }
    return c.JSON(http.StatusOK, echo.Map{"reservations": out})
}

// Get handles GET /reservations/:id, including the assigned table IDs.
func (h *ReservationHandler) Get(c echo.Context) error {
    id, err := pathID(c)
    if err != nil {
        return writeError(c, err)
    }
    res, assignments, err := h.Svc.GetReservation(c.Request().Context(), id)
    if err != nil {
        return writeError(c, err)
    }
    ids := make([]uint64, 0, len(assignments))
    for _, a := range assignments {
        ids = append(ids, a.TableID)
    }
    return c.JSON(http.StatusOK, reservationResponse(res, ids, nil))
}

// updateBody carries the mutable reservation fields; omitted fields
// keep their current values.
type updateBody struct {
    PartySize       *int    `json:"party_size"`
    Date            *string `json:"date"`
    Time            *string `json:"time"`
    DurationMinutes *int    `json:"duration_minutes"`
    SpecialRequests *string `json:"special_requests"`
}

// Update handles PUT /reservations/:id.  The engine re-validates and
// re-seats the changed reservation atomically; when nothing fits the
// new shape the original assignment is untouched and the caller gets a
// 409.
func (h *ReservationHandler) Update(c echo.Context) error {
    id, err := pathID(c)
    if err != nil {
        return writeError(c, err)
    }
    var body updateBody
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    upd := booking.UpdateRequest{
        PartySize:       body.PartySize,
        DurationMinutes: body.DurationMinutes,
        SpecialRequests: body.SpecialRequests,
    }
    if body.Date != nil {
        d, err := model.ParseDate(*body.Date)
        if err != nil {
            return writeError(c, &booking.ValidationError{Field: "date", Reason: "must be YYYY-MM-DD"})
        }
        upd.Date = &d
    }
    if body.Time != nil {
        t, err := model.ParseTimeOfDay(*body.Time)
        if err != nil {
            return writeError(c, &booking.ValidationError{Field: "time", Reason: "must be HH:MM"})
        }
        upd.StartTime = &t
    }
    res, cand, err := h.Svc.UpdateReservation(c.Request().Context(), id, upd)
    if err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusOK, reservationResponse(res, cand.TableIDs, cand.TableNumbers))
}

// statusBody is the payload of the status transition endpoint.
type statusBody struct {
    Status string `json:"status"`
}

// ChangeStatus handles PATCH /reservations/:id/status.  The transition
// table in the engine decides what is allowed; cancelled and no_show
// transitions free the tables the instant they commit.
func (h *ReservationHandler) ChangeStatus(c echo.Context) error {
    id, err := pathID(c)
    if err != nil {
        return writeError(c, err)
    }
    var body statusBody
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    res, err := h.Svc.ChangeStatus(c.Request().Context(), id, model.ReservationStatus(body.Status))
    if err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusOK, reservationResponse(res, nil, nil))
}

// Cancel handles POST /reservations/:id/cancel, a convenience for the
// cancelled transition.
func (h *ReservationHandler) Cancel(c echo.Context) error {
    id, err := pathID(c)
    if err != nil {
        return writeError(c, err)
    }
    res, err := h.Svc.CancelReservation(c.Request().Context(), id)
    if err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusOK, reservationResponse(res, nil, nil))
}

// Delete handles DELETE /reservations/:id: a hard delete that removes
// the assignment rows in the same atomic unit.
func (h *ReservationHandler) Delete(c echo.Context) error {
    id, err := pathID(c)
    if err != nil {
        return writeError(c, err)
    }
    if err := h.Svc.DeleteReservation(c.Request().Context(), id); err != nil {
        return writeError(c, err)
    }
    return c.NoContent(http.StatusNoContent)
}
