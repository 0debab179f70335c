package handler // operating hours management endpoints

import (
    "net/http" // http defines status code constants
    "strconv"  // strconv parses the weekday path parameter
    "strings"  // strings trims optional text fields
    "time"     // time provides weekday values and dates

    "github.com/labstack/echo/v4" // echo framework supplies request context

    "github.com/iliyamo/restaurant-table-reservation/internal/booking"
    "github.com/iliyamo/restaurant-table-reservation/internal/model"
    "github.com/iliyamo/restaurant-table-reservation/internal/repository"
)

// HoursHandler serves the weekly schedule and the per-date overrides.
// Window bounds are validated on write so the resolver never has to
// doubt stored rows.
type HoursHandler struct {
    Hours *repository.HoursRepo
}

// weeklyBody is the JSON payload for upserting one weekday.
type weeklyBody struct {
    OpenTime    model.TimeOfDay `json:"open_time"`
    CloseTime   model.TimeOfDay `json:"close_time"`
    LastSeating model.TimeOfDay `json:"last_seating_time"`
}

// ListWeekly handles GET /hours.  Weekdays without a row are closed and
// simply absent from the response.
func (h *HoursHandler) ListWeekly(c echo.Context) error {
    rows, err := h.Hours.ListWeekly(c.Request().Context())
    if err != nil {
        return writeError(c, err)
    }
    out := make([]echo.Map, 0, len(rows))
    for _, r := range rows {
        out = append(out, echo.Map{
            "day_of_week":       int(r.DayOfWeek),
            "open_time":         r.OpenTime,
            "close_time":        r.CloseTime,
            "last_seating_time": r.LastSeating,
        })
    }
    return c.JSON(http.StatusOK, echo.Map{"hours": out})
}

// UpsertWeekly handles PUT /hours/:day with day 0=Sunday..6=Saturday.
func (h *HoursHandler) UpsertWeekly(c echo.Context) error {
    day, err := strconv.Atoi(c.Param("day"))
    if err != nil || day < 0 || day > 6 {
        return writeError(c, &booking.ValidationError{Field: "day", Reason: "must be a weekday 0 (Sunday) through 6 (Saturday)"})
    }
    var body weeklyBody
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if err := booking.ValidateWindowBounds(body.OpenTime, body.CloseTime, body.LastSeating); err != nil {
        return writeError(c, err)
    }
    row := &model.OperatingHours{
        DayOfWeek:   time.Weekday(day),
        OpenTime:    body.OpenTime,
        CloseTime:   body.CloseTime,
        LastSeating: body.LastSeating,
    }
    if err := h.Hours.UpsertWeekly(c.Request().Context(), row); err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{
        "day_of_week":       int(row.DayOfWeek),
        "open_time":         row.OpenTime,
        "close_time":        row.CloseTime,
        "last_seating_time": row.LastSeating,
    })
}

// specialBody is the JSON payload for upserting one override date.
type specialBody struct {
    Date        string           `json:"date"`
    IsClosed    bool             `json:"is_closed"`
    OpenTime    *model.TimeOfDay `json:"open_time"`
    CloseTime   *model.TimeOfDay `json:"close_time"`
    LastSeating *model.TimeOfDay `json:"last_seating_time"`
    Name        *string          `json:"name"`
    Description *string          `json:"description"`
}

// specialResponse flattens an override row for JSON.
func specialResponse(sh *model.SpecialHours) echo.Map {
    return echo.Map{
        "date":              model.FormatDate(sh.Date),
        "is_closed":         sh.IsClosed,
        "open_time":         sh.OpenTime,
        "close_time":        sh.CloseTime,
        "last_seating_time": sh.LastSeating,
        "name":              sh.Name,
        "description":       sh.Description,
    }
}

// ListSpecial handles GET /hours/special and returns overrides from
// today onward.
func (h *HoursHandler) ListSpecial(c echo.Context) error {
    rows, err := h.Hours.ListSpecial(c.Request().Context(), model.DateOnly(time.Now()))
    if err != nil {
        return writeError(c, err)
    }
    out := make([]echo.Map, 0, len(rows))
    for i := range rows {
        out = append(out, specialResponse(&rows[i]))
    }
    return c.JSON(http.StatusOK, echo.Map{"special_hours": out})
}

// UpsertSpecial handles PUT /hours/special.  A closed day carries no
// window; an open override must carry a full, consistent one.  The
// override is total: the weekly row contributes nothing on that date.
func (h *HoursHandler) UpsertSpecial(c echo.Context) error {
    var body specialBody
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    date, err := model.ParseDate(body.Date)
    if err != nil {
        return writeError(c, &booking.ValidationError{Field: "date", Reason: "must be YYYY-MM-DD"})
    }
    sh := &model.SpecialHours{Date: date, IsClosed: body.IsClosed}
    if !body.IsClosed {
        if body.OpenTime == nil || body.CloseTime == nil {
            return writeError(c, &booking.ValidationError{Field: "open_time", Reason: "open and close times are required unless is_closed is set"})
        }
        if err := booking.ValidateOverrideBounds(*body.OpenTime, *body.CloseTime, body.LastSeating); err != nil {
            return writeError(c, err)
        }
        sh.OpenTime = body.OpenTime
        sh.CloseTime = body.CloseTime
        sh.LastSeating = body.LastSeating
    }
    if body.Name != nil && strings.TrimSpace(*body.Name) != "" {
        name := strings.TrimSpace(*body.Name)
        sh.Name = &name
    }
    if body.Description != nil && strings.TrimSpace(*body.Description) != "" {
        desc := strings.TrimSpace(*body.Description)
        sh.Description = &desc
    }
    if err := h.Hours.UpsertSpecial(c.Request().Context(), sh); err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusOK, specialResponse(sh))
}

// DeleteSpecial handles DELETE /hours/special/:date, restoring the
// weekly schedule for that date.
func (h *HoursHandler) DeleteSpecial(c echo.Context) error {
    date, err := model.ParseDate(c.Param("date"))
    if err != nil {
        return writeError(c, &booking.ValidationError{Field: "date", Reason: "must be YYYY-MM-DD"})
    }
    if err := h.Hours.DeleteSpecial(c.Request().Context(), date); err != nil {
        return writeError(c, err)
    }
    return c.NoContent(http.StatusNoContent)
}
