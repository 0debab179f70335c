package handler // table management endpoints for the floor plan

import (
    "net/http" // http defines status code constants
    "strings"  // strings trims optional text fields

    "github.com/labstack/echo/v4" // echo framework supplies request context

    "github.com/iliyamo/restaurant-table-reservation/internal/booking"
    "github.com/iliyamo/restaurant-table-reservation/internal/model"
    "github.com/iliyamo/restaurant-table-reservation/internal/repository"
)

// TableHandler serves the floor-plan CRUD endpoints.  Chairs are never
// managed directly: the repository keeps one chair row per seat in sync
// with a table's maximum capacity.
type TableHandler struct {
    Tables *repository.TableRepo
}

// tableBody is the JSON payload accepted by create and update.
type tableBody struct {
    TableNumber *int    `json:"table_number"` // floor number, unique
    MinCapacity *int    `json:"min_capacity"` // smallest party accepted
    MaxCapacity *int    `json:"max_capacity"` // largest party seated
    IsShared    *bool   `json:"is_shared"`    // combinable with other shared tables
    Location    *string `json:"location"`     // optional placement note
    IsActive    *bool   `json:"is_active"`    // in service flag, defaults true
}

// validateCapacity rejects inverted or non-positive seating ranges
// before anything touches storage.
func validateCapacity(min, max int) error {
    if min < 1 {
        return &booking.ValidationError{Field: "min_capacity", Reason: "must be at least 1"}
    }
    if max < min {
        return &booking.ValidationError{Field: "max_capacity", Reason: "must not be smaller than min_capacity"}
    }
    return nil
}

// tableResponse decorates a table with its chair count for list and get
// responses.
func (h *TableHandler) tableResponse(c echo.Context, t *model.Table) (echo.Map, error) {
    chairs, err := h.Tables.ChairCount(c.Request().Context(), t.ID)
    if err != nil {
        return nil, err
    }
    return echo.Map{
        "id":           t.ID,
        "table_number": t.TableNumber,
        "min_capacity": t.MinCapacity,
        "max_capacity": t.MaxCapacity,
        "is_shared":    t.IsShared,
        "location":     t.Location,
        "is_active":    t.IsActive,
        "chairs":       chairs,
        "created_at":   t.CreatedAt,
        "updated_at":   t.UpdatedAt,
    }, nil
}

// Create handles POST /tables.  Chair rows 1..max_capacity are created
// in the same transaction as the table itself.
func (h *TableHandler) Create(c echo.Context) error {
    var body tableBody
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if body.TableNumber == nil || body.MinCapacity == nil || body.MaxCapacity == nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "table_number, min_capacity and max_capacity are required"})
    }
    if err := validateCapacity(*body.MinCapacity, *body.MaxCapacity); err != nil {
        return writeError(c, err)
    }
    t := &model.Table{
        TableNumber: *body.TableNumber,
        MinCapacity: *body.MinCapacity,
        MaxCapacity: *body.MaxCapacity,
        IsActive:    true,
    }
    if body.IsShared != nil {
        t.IsShared = *body.IsShared
    }
    if body.IsActive != nil {
        t.IsActive = *body.IsActive
    }
    if body.Location != nil && strings.TrimSpace(*body.Location) != "" {
        loc := strings.TrimSpace(*body.Location)
        t.Location = &loc
    }
    if err := h.Tables.Create(c.Request().Context(), t); err != nil {
        return writeError(c, err)
    }
    out, err := h.tableResponse(c, t)
    if err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusCreated, out)
}

// List handles GET /tables and returns every table with its chair count.
func (h *TableHandler) List(c echo.Context) error {
    tables, err := h.Tables.List(c.Request().Context())
    if err != nil {
        return writeError(c, err)
    }
    out := make([]echo.Map, 0, len(tables))
    for i := range tables {
        m, err := h.tableResponse(c, &tables[i])
        if err != nil {
            return writeError(c, err)
        }
        out = append(out, m)
    }
    return c.JSON(http.StatusOK, echo.Map{"tables": out})
}

// Get handles GET /tables/:id.
func (h *TableHandler) Get(c echo.Context) error {
    id, err := pathID(c)
    if err != nil {
        return writeError(c, err)
    }
    t, err := h.Tables.GetByID(c.Request().Context(), id)
    if err != nil {
        return writeError(c, err)
    }
    out, err := h.tableResponse(c, t)
    if err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusOK, out)
}

// Update handles PUT /tables/:id.  Omitted fields keep their current
// values; a capacity change resyncs the chair rows in the same
// transaction.
func (h *TableHandler) Update(c echo.Context) error {
    id, err := pathID(c)
    if err != nil {
        return writeError(c, err)
    }
    cur, err := h.Tables.GetByID(c.Request().Context(), id)
    if err != nil {
        return writeError(c, err)
    }
    var body tableBody
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if body.TableNumber != nil {
        cur.TableNumber = *body.TableNumber
    }
    if body.MinCapacity != nil {
        cur.MinCapacity = *body.MinCapacity
    }
    if body.MaxCapacity != nil {
        cur.MaxCapacity = *body.MaxCapacity
    }
    if body.IsShared != nil {
        cur.IsShared = *body.IsShared
    }
    if body.IsActive != nil {
        cur.IsActive = *body.IsActive
    }
    if body.Location != nil {
        loc := strings.TrimSpace(*body.Location)
        if loc == "" {
            cur.Location = nil
        } else {
            cur.Location = &loc
        }
    }
    if err := validateCapacity(cur.MinCapacity, cur.MaxCapacity); err != nil {
        return writeError(c, err)
    }
    if err := h.Tables.Update(c.Request().Context(), cur); err != nil {
        return writeError(c, err)
    }
    out, err := h.tableResponse(c, cur)
    if err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusOK, out)
}

// Delete handles DELETE /tables/:id.  The table's chairs and assignment
// rows go with it, in one transaction.
func (h *TableHandler) Delete(c echo.Context) error {
    id, err := pathID(c)
    if err != nil {
        return writeError(c, err)
    }
    if err := h.Tables.Delete(c.Request().Context(), id); err != nil {
        return writeError(c, err)
    }
    return c.NoContent(http.StatusNoContent)
}
