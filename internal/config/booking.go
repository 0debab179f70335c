package config

// BookingConfig carries the seating policy knobs.  These are business
// decisions rather than schema facts (how long a table is held, how many
// shared tables may be pushed together, how many spare seats are tolerated),
// so they load from the environment instead of being hard-coded.
type BookingConfig struct {
    DefaultDurationMin    int // minutes a reservation holds its tables when no duration is given
    SlotGranularityMin    int // step of the availability grid in minutes
    CombineMaxTables      int // most shared tables joinable for one party
    CombineMaxExcess      int // largest tolerated spare-seat overshoot for a combination (<=0 disables)
    GuestContactThreshold int // party size at which a real email or phone becomes mandatory
}

// LoadBookingConfig reads the policy knobs from environment variables,
// falling back to the stock restaurant defaults when unset.
func LoadBookingConfig() BookingConfig {
    return BookingConfig{
        DefaultDurationMin:    envInt("RESERVATION_DEFAULT_DURATION_MIN", 90),
        SlotGranularityMin:    envInt("SLOT_GRANULARITY_MIN", 15),
        CombineMaxTables:      envInt("COMBINE_MAX_TABLES", 3),
        CombineMaxExcess:      envInt("COMBINE_MAX_EXCESS", 6),
        GuestContactThreshold: envInt("GUEST_CONTACT_THRESHOLD", 6),
    }
}
