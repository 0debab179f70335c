package booking

// Policy carries the seating rules that are business decisions
// rather than data-model facts.  Zero values are replaced by the
// defaults below, except MaxCombinationExcess where zero already
// carries a meaning (no bound).
//
// Fields:
//  DefaultDurationMinutes – window length when a request omits one.
//  SlotGranularityMinutes – grid step for slot enumeration.
//  MaxCombinationTables   – most tables joinable for one party.
//  MaxCombinationExcess   – largest tolerated combined capacity
//                           overshoot; zero or negative disables
//                           the bound.
//  GuestContactThreshold  – party size at which real contact info
//                           becomes mandatory.
type Policy struct {
    DefaultDurationMinutes int
    SlotGranularityMinutes int
    MaxCombinationTables   int
    MaxCombinationExcess   int
    GuestContactThreshold  int
}

// DefaultPolicy returns the stock seating rules: 90 minute turns,
// 15 minute slot grid, up to three shared tables per party with
// at most six spare seats, contact info required from six guests.
func DefaultPolicy() Policy {
    return Policy{
        DefaultDurationMinutes: 90,
        SlotGranularityMinutes: 15,
        MaxCombinationTables:   3,
        MaxCombinationExcess:   6,
        GuestContactThreshold:  6,
    }
}

// withDefaults fills unset fields from DefaultPolicy.  The excess
// bound is left alone: non-positive values mean "no bound" there.
func (p Policy) withDefaults() Policy {
    def := DefaultPolicy()
    if p.DefaultDurationMinutes <= 0 {
        p.DefaultDurationMinutes = def.DefaultDurationMinutes
    }
    if p.SlotGranularityMinutes <= 0 {
        p.SlotGranularityMinutes = def.SlotGranularityMinutes
    }
    if p.MaxCombinationTables <= 0 {
        p.MaxCombinationTables = def.MaxCombinationTables
    }
    if p.GuestContactThreshold <= 0 {
        p.GuestContactThreshold = def.GuestContactThreshold
    }
    return p
}
