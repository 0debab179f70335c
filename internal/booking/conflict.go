package booking

import (
    "sort"

    "github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// Overlaps reports whether two half-open windows [aStart, aEnd)
// and [bStart, bEnd) intersect.  Half-open means a window ending
// at 18:30 and one starting at 18:30 share the table back to back
// without conflicting.
func Overlaps(aStart, aEnd, bStart, bEnd model.TimeOfDay) bool {
    return aStart < bEnd && bStart < aEnd
}

// ConflictChecker answers occupancy questions against a snapshot
// of one date's occupied windows.  It is the read-only half of
// conflict detection: allocation re-checks through the store's
// locked transaction, which is the authority; the checker merely
// prunes candidates and feeds advisory reads.
type ConflictChecker struct {
    byTable map[uint64][]Occupancy
}

// NewConflictChecker indexes a snapshot by table.  Windows are
// kept sorted by start time per table.
func NewConflictChecker(occupied []Occupancy) *ConflictChecker {
    byTable := make(map[uint64][]Occupancy)
    for _, o := range occupied {
        byTable[o.TableID] = append(byTable[o.TableID], o)
    }
    for id := range byTable {
        ws := byTable[id]
        sort.Slice(ws, func(i, j int) bool { return ws[i].Start < ws[j].Start })
    }
    return &ConflictChecker{byTable: byTable}
}

// Busy reports whether the table has an occupying window that
// intersects [start, end).
func (c *ConflictChecker) Busy(tableID uint64, start, end model.TimeOfDay) bool {
    for _, o := range c.byTable[tableID] {
        if o.Start >= end {
            break
        }
        if Overlaps(start, end, o.Start, o.End) {
            return true
        }
    }
    return false
}

// AnyBusy reports whether any table of a candidate set is busy
// for the window.
func (c *ConflictChecker) AnyBusy(tableIDs []uint64, start, end model.TimeOfDay) bool {
    for _, id := range tableIDs {
        if c.Busy(id, start, end) {
            return true
        }
    }
    return false
}
