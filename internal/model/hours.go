package model

import "time"

// OperatingHours is one weekly schedule row.  At most one row
// exists per weekday; a missing row means the restaurant does not
// open on that day.  LastSeating is the latest admissible start
// time for a reservation and always falls strictly between the
// open and close times.
//
// Fields:
//  ID          – primary key identifier.
//  DayOfWeek   – weekday the row applies to (0=Sunday .. 6=Saturday).
//  OpenTime    – time the restaurant opens.
//  CloseTime   – time the restaurant closes.
//  LastSeating – latest reservation start time accepted.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type OperatingHours struct {
    ID          uint64       // operating_hours.id
    DayOfWeek   time.Weekday // operating_hours.day_of_week
    OpenTime    TimeOfDay    // operating_hours.open_time
    CloseTime   TimeOfDay    // operating_hours.close_time
    LastSeating TimeOfDay    // operating_hours.last_seating_time
    CreatedAt   time.Time    // operating_hours.created_at
    UpdatedAt   time.Time    // operating_hours.updated_at
}

// SpecialHours overrides the weekly schedule for a single date.
// The override is total: when a row exists for a date the weekly
// row for that weekday is ignored entirely, whether the override
// opens the restaurant or closes it.  The time columns are nil
// when IsClosed is set.
//
// Fields:
//  ID          – primary key identifier.
//  Date        – calendar date the override applies to.
//  IsClosed    – whether the restaurant is closed all day.
//  OpenTime    – override opening time (nil when closed).
//  CloseTime   – override closing time (nil when closed).
//  LastSeating – override last seating time (nil when closed).
//  Name        – optional label (holiday name, private event).
//  Description – optional longer note.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type SpecialHours struct {
    ID          uint64     // special_hours.id
    Date        time.Time  // special_hours.date
    IsClosed    bool       // special_hours.is_closed
    OpenTime    *TimeOfDay // special_hours.open_time (nullable)
    CloseTime   *TimeOfDay // special_hours.close_time (nullable)
    LastSeating *TimeOfDay // special_hours.last_seating_time (nullable)
    Name        *string    // special_hours.name (nullable)
    Description *string    // special_hours.description (nullable)
    CreatedAt   time.Time  // special_hours.created_at
    UpdatedAt   time.Time  // special_hours.updated_at
}
