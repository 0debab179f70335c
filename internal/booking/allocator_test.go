package booking_test

import (
    "context"
    "sync"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/restaurant-table-reservation/internal/booking"
    "github.com/iliyamo/restaurant-table-reservation/internal/memstore"
    "github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// TestAllocateEveningScenario walks a single table through an
// evening: 17:00-22:00 hours with last seating at 21:00.
func TestAllocateEveningScenario(t *testing.T) {
    st := memstore.New()
    seedAllWeek(t, st, "17:00", "22:00", "21:00")
    tableID := addTable(t, st, 1, 2, 4, false)
    cust := addCustomer(t, st, "dana")
    svc := newService(st)

    // 18:00 for 90 minutes books the table for [18:00, 19:30).
    first, cand := book(t, svc, cust, friday, "18:00", 3, 90)
    assert.Equal(t, model.StatusPending, first.Status)
    assert.Equal(t, []uint64{tableID}, cand.TableIDs)
    assert.Equal(t, at(t, "19:30"), first.EndTime())

    // 19:00 for 60 minutes lands inside that window; with no
    // other table the request exhausts the candidates.
    _, _, err := svc.CreateAndAssign(context.Background(), booking.CreateRequest{
        CustomerID:      cust,
        PartySize:       3,
        Date:            mustDate(t, friday),
        StartTime:       at(t, "19:00"),
        DurationMinutes: 60,
    })
    var noAvail *booking.NoAvailabilityError
    require.ErrorAs(t, err, &noAvail)
    assert.Equal(t, at(t, "19:00"), noAvail.StartTime)

    // 20:30 for 60 minutes fits: the table is free again and the
    // window ends at 21:30, before closing.
    second, _ := book(t, svc, cust, friday, "20:30", 3, 60)
    assert.Equal(t, at(t, "21:30"), second.EndTime())
}

func TestAllocateFallsToNextTable(t *testing.T) {
    st := memstore.New()
    seedAllWeek(t, st, "17:00", "22:00", "21:00")
    tight := addTable(t, st, 1, 2, 4, false)
    loose := addTable(t, st, 2, 2, 6, false)
    cust := addCustomer(t, st, "amari")
    svc := newService(st)

    // The tightest fit wins first.
    _, cand := book(t, svc, cust, friday, "18:00", 3, 90)
    assert.Equal(t, []uint64{tight}, cand.TableIDs)

    // An overlapping request skips the taken table and seats the
    // looser one instead of failing.
    _, cand = book(t, svc, cust, friday, "19:00", 3, 60)
    assert.Equal(t, []uint64{loose}, cand.TableIDs)
}

func TestAllocateValidation(t *testing.T) {
    st := memstore.New()
    seedAllWeek(t, st, "17:00", "22:00", "21:00")
    addTable(t, st, 1, 2, 4, false)
    cust := addCustomer(t, st, "kim")
    svc := newService(st)

    cases := []struct {
        name  string
        mut   func(*booking.CreateRequest)
        field string
    }{
        {"zero party", func(r *booking.CreateRequest) { r.PartySize = 0 }, "party_size"},
        {"negative party", func(r *booking.CreateRequest) { r.PartySize = -2 }, "party_size"},
        {"negative duration", func(r *booking.CreateRequest) { r.DurationMinutes = -30 }, "duration_minutes"},
        {"missing date", func(r *booking.CreateRequest) { r.Date = time.Time{} }, "date"},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            req := booking.CreateRequest{
                CustomerID:      cust,
                PartySize:       3,
                Date:            mustDate(t, friday),
                StartTime:       at(t, "18:00"),
                DurationMinutes: 90,
            }
            tc.mut(&req)
            _, _, err := svc.CreateAndAssign(context.Background(), req)
            var verr *booking.ValidationError
            require.ErrorAs(t, err, &verr)
            assert.Equal(t, tc.field, verr.Field)
        })
    }

    // Unknown customers are reported as missing, not validated.
    _, _, err := svc.CreateAndAssign(context.Background(), booking.CreateRequest{
        CustomerID: 9999,
        PartySize:  3,
        Date:       mustDate(t, friday),
        StartTime:  at(t, "18:00"),
    })
    var nf *booking.NotFoundError
    require.ErrorAs(t, err, &nf)
    assert.Equal(t, "customer", nf.Entity)
}

func TestAllocateClosedDay(t *testing.T) {
    st := memstore.New()
    seedDay(t, st, time.Friday, "17:00", "22:00", "21:00")
    addTable(t, st, 1, 2, 4, false)
    cust := addCustomer(t, st, "noor")
    svc := newService(st)

    // Saturday has no hours row.
    _, _, err := svc.CreateAndAssign(context.Background(), booking.CreateRequest{
        CustomerID: cust,
        PartySize:  2,
        Date:       mustDate(t, "2026-09-05"),
        StartTime:  at(t, "18:00"),
    })
    var closed *booking.ClosedError
    require.ErrorAs(t, err, &closed)
}

func TestAllocateDefaultDuration(t *testing.T) {
    st := memstore.New()
    seedAllWeek(t, st, "17:00", "22:00", "21:00")
    addTable(t, st, 1, 2, 4, false)
    cust := addCustomer(t, st, "ines")
    svc := newService(st)

    res, _, err := svc.CreateAndAssign(context.Background(), booking.CreateRequest{
        CustomerID: cust,
        PartySize:  2,
        Date:       mustDate(t, friday),
        StartTime:  at(t, "18:00"),
    })
    require.NoError(t, err)
    assert.Equal(t, 90, res.DurationMinutes)
}

// TestAllocateCombinationAtomicity books a party that needs two
// shared tables and checks both assignments land together.
func TestAllocateCombinationAtomicity(t *testing.T) {
    st := memstore.New()
    seedAllWeek(t, st, "17:00", "22:00", "21:00")
    a := addTable(t, st, 1, 2, 4, true)
    b := addTable(t, st, 2, 2, 4, true)
    cust := addCustomer(t, st, "blake")
    svc := newService(st)

    res, cand := book(t, svc, cust, friday, "18:00", 7, 90)
    assert.ElementsMatch(t, []uint64{a, b}, cand.TableIDs)

    asg, err := st.AssignmentsFor(context.Background(), res.ID)
    require.NoError(t, err)
    require.Len(t, asg, 2)

    // Both member tables are now busy for the window: a party
    // needing either one cannot book into it.
    _, _, err = svc.CreateAndAssign(context.Background(), booking.CreateRequest{
        CustomerID: cust,
        PartySize:  3,
        Date:       mustDate(t, friday),
        StartTime:  at(t, "18:30"),
    })
    var noAvail *booking.NoAvailabilityError
    require.ErrorAs(t, err, &noAvail)
}

// TestAllocateConcurrentSingleWinner runs N identical requests at
// the one remaining table; exactly one may win.
func TestAllocateConcurrentSingleWinner(t *testing.T) {
    st := memstore.New()
    seedAllWeek(t, st, "17:00", "22:00", "21:00")
    addTable(t, st, 1, 2, 4, false)
    cust := addCustomer(t, st, "sasha")
    svc := newService(st)

    const n = 16
    var wg sync.WaitGroup
    errs := make([]error, n)
    for i := 0; i < n; i++ {
        wg.Add(1)
        go func(i int) {
            defer wg.Done()
            _, _, err := svc.CreateAndAssign(context.Background(), booking.CreateRequest{
                CustomerID:      cust,
                PartySize:       3,
                Date:            mustDate(t, friday),
                StartTime:       at(t, "19:00"),
                DurationMinutes: 60,
            })
            errs[i] = err
        }(i)
    }
    wg.Wait()

    wins := 0
    for _, err := range errs {
        if err == nil {
            wins++
            continue
        }
        var noAvail *booking.NoAvailabilityError
        require.ErrorAs(t, err, &noAvail)
    }
    assert.Equal(t, 1, wins)

    // No partial state: one reservation, one assignment.
    all, err := st.ListReservations(context.Background(), nil, nil)
    require.NoError(t, err)
    require.Len(t, all, 1)
    asg, err := st.AssignmentsFor(context.Background(), all[0].ID)
    require.NoError(t, err)
    assert.Len(t, asg, 1)
}

// TestAllocateConcurrentSpread gives the contenders two tables;
// both get seated, across distinct tables.
func TestAllocateConcurrentSpread(t *testing.T) {
    st := memstore.New()
    seedAllWeek(t, st, "17:00", "22:00", "21:00")
    addTable(t, st, 1, 2, 4, false)
    addTable(t, st, 2, 2, 4, false)
    cust := addCustomer(t, st, "robin")
    svc := newService(st)

    var wg sync.WaitGroup
    results := make([]booking.Candidate, 2)
    errs := make([]error, 2)
    for i := 0; i < 2; i++ {
        wg.Add(1)
        go func(i int) {
            defer wg.Done()
            _, cand, err := svc.CreateAndAssign(context.Background(), booking.CreateRequest{
                CustomerID:      cust,
                PartySize:       2,
                Date:            mustDate(t, friday),
                StartTime:       at(t, "18:00"),
                DurationMinutes: 90,
            })
            results[i], errs[i] = cand, err
        }(i)
    }
    wg.Wait()

    require.NoError(t, errs[0])
    require.NoError(t, errs[1])
    assert.NotEqual(t, results[0].TableIDs, results[1].TableIDs)
}
