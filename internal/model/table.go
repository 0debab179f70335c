package model

import "time"

// Table describes a physical dining table on the restaurant floor.
// Tables are uniquely identified by their table number and carry a
// seating range: parties smaller than MinCapacity or larger than
// MaxCapacity do not fit.  Shared tables may be combined with other
// shared tables to seat larger parties.
//
// Fields:
//  ID          – primary key identifier.
//  TableNumber – number of the table on the floor plan.
//  MinCapacity – smallest party the table accepts.
//  MaxCapacity – largest party the table seats.
//  IsShared    – whether the table may join combinations.
//  Location    – optional free-form placement note (window, patio).
//  IsActive    – whether the table is currently in service.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Table struct {
    ID          uint64    // restaurant_tables.id
    TableNumber int       // restaurant_tables.table_number
    MinCapacity int       // restaurant_tables.min_capacity
    MaxCapacity int       // restaurant_tables.max_capacity
    IsShared    bool      // restaurant_tables.is_shared
    Location    *string   // restaurant_tables.location (nullable)
    IsActive    bool      // restaurant_tables.is_active
    CreatedAt   time.Time // restaurant_tables.created_at
    UpdatedAt   time.Time // restaurant_tables.updated_at
}

// Chair is a single seat at a table.  Chairs are bookkeeping:
// one row exists per seat up to the table's MaxCapacity and the
// set is resynced whenever the capacity changes.  Seating
// decisions read the capacity columns, not chair counts.
//
// Fields:
//  ID          – primary key identifier.
//  TableID     – table the chair belongs to.
//  ChairNumber – position of the chair at the table (1-based).
//  CreatedAt   – creation timestamp.
type Chair struct {
    ID          uint64    // chairs.id
    TableID     uint64    // chairs.table_id
    ChairNumber int       // chairs.chair_number
    CreatedAt   time.Time // chairs.created_at
}
