package handler // customer lookup endpoints

import (
    "net/http" // http defines status code constants

    "github.com/labstack/echo/v4" // echo framework supplies request context

    "github.com/iliyamo/restaurant-table-reservation/internal/model"
    "github.com/iliyamo/restaurant-table-reservation/internal/repository"
)

// customerResponse flattens a customer for JSON.
func customerResponse(cu *model.Customer) echo.Map {
    return echo.Map{
        "id":         cu.ID,
        "name":       cu.Name,
        "email":      cu.Email,
        "phone":      cu.Phone,
        "created_at": cu.CreatedAt,
        "updated_at": cu.UpdatedAt,
    }
}

// CustomerHandler serves read access to the guest book.  Customers are
// never POSTed directly; reservation intake finds or creates them from
// the contact info on the booking.
type CustomerHandler struct {
    Customers *repository.CustomerRepo
}

// List handles GET /customers with optional exact ?email= and ?phone=
// filters.
func (h *CustomerHandler) List(c echo.Context) error {
    customers, err := h.Customers.List(c.Request().Context(), c.QueryParam("email"), c.QueryParam("phone"))
    if err != nil {
        return writeError(c, err)
    }
    out := make([]echo.Map, 0, len(customers))
    for i := range customers {
        out = append(out, customerResponse(&customers[i]))
    }
    return c.JSON(http.StatusOK, echo.Map{"customers": out})
}

// Get handles GET /customers/:id.
func (h *CustomerHandler) Get(c echo.Context) error {
    id, err := pathID(c)
    if err != nil {
        return writeError(c, err)
    }
    customer, err := h.Customers.GetByID(c.Request().Context(), id)
    if err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusOK, customerResponse(customer))
}
