package model

import "time"

// Customer is a guest who holds reservations.  Customers are
// created through reservation intake rather than a dedicated
// signup flow: intake looks an existing record up by email, then
// by phone, and only creates a new row when neither matches.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – guest name as given at booking time.
//  Email     – contact email; may hold a generated placeholder
//              for small walk-in parties with no contact info.
//  Phone     – optional contact phone number.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Customer struct {
    ID        uint64    // customers.id
    Name      string    // customers.name
    Email     *string   // customers.email (nullable)
    Phone     *string   // customers.phone (nullable)
    CreatedAt time.Time // customers.created_at
    UpdatedAt time.Time // customers.updated_at
}
