package booking_test

import (
    "context"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/restaurant-table-reservation/internal/booking"
    "github.com/iliyamo/restaurant-table-reservation/internal/memstore"
    "github.com/iliyamo/restaurant-table-reservation/internal/model"
)

func TestChangeStatusLifecycle(t *testing.T) {
    st := memstore.New()
    seedAllWeek(t, st, "17:00", "22:00", "21:00")
    addTable(t, st, 1, 2, 4, false)
    cust := addCustomer(t, st, "vera")
    rec := &recorder{}
    svc := booking.NewService(st, booking.Policy{}, rec)

    res, _ := book(t, svc, cust, friday, "18:00", 3, 90)

    for _, next := range []model.ReservationStatus{
        model.StatusConfirmed, model.StatusSeated, model.StatusCompleted,
    } {
        updated, err := svc.ChangeStatus(context.Background(), res.ID, next)
        require.NoError(t, err)
        assert.Equal(t, next, updated.Status)
    }
    assert.Equal(t, []string{
        "pending>confirmed", "confirmed>seated", "seated>completed",
    }, rec.changes)
    assert.Equal(t, []uint64{res.ID}, rec.created)
}

func TestChangeStatusRejectsAndLeavesState(t *testing.T) {
    st := memstore.New()
    seedAllWeek(t, st, "17:00", "22:00", "21:00")
    addTable(t, st, 1, 2, 4, false)
    cust := addCustomer(t, st, "juno")
    svc := newService(st)

    res, _ := book(t, svc, cust, friday, "18:00", 3, 90)
    _, err := svc.ChangeStatus(context.Background(), res.ID, model.StatusConfirmed)
    require.NoError(t, err)
    _, err = svc.ChangeStatus(context.Background(), res.ID, model.StatusSeated)
    require.NoError(t, err)
    _, err = svc.ChangeStatus(context.Background(), res.ID, model.StatusCompleted)
    require.NoError(t, err)

    // A finished reservation cannot be reopened, and the rejected
    // call changes nothing.
    _, err = svc.ChangeStatus(context.Background(), res.ID, model.StatusConfirmed)
    var inv *booking.InvalidTransitionError
    require.ErrorAs(t, err, &inv)
    assert.Equal(t, model.StatusCompleted, inv.From)

    cur, _, err := svc.GetReservation(context.Background(), res.ID)
    require.NoError(t, err)
    assert.Equal(t, model.StatusCompleted, cur.Status)

    // Unknown reservation and unknown status are their own cases.
    _, err = svc.ChangeStatus(context.Background(), 9999, model.StatusConfirmed)
    var nf *booking.NotFoundError
    require.ErrorAs(t, err, &nf)

    _, err = svc.ChangeStatus(context.Background(), res.ID, "arrived")
    var verr *booking.ValidationError
    require.ErrorAs(t, err, &verr)
}

func TestCancelFreesTheTable(t *testing.T) {
    st := memstore.New()
    seedAllWeek(t, st, "17:00", "22:00", "21:00")
    tableID := addTable(t, st, 1, 2, 4, false)
    cust := addCustomer(t, st, "pau")
    svc := newService(st)

    res, _ := book(t, svc, cust, friday, "18:00", 3, 90)

    // While pending the window is held.
    err := svc.CheckSlot(context.Background(), mustDate(t, friday), at(t, "18:30"), 2, 60)
    var noAvail *booking.NoAvailabilityError
    require.ErrorAs(t, err, &noAvail)

    cancelled, err := svc.CancelReservation(context.Background(), res.ID)
    require.NoError(t, err)
    assert.Equal(t, model.StatusCancelled, cancelled.Status)

    // Identical window books again immediately; assignment rows
    // of the cancelled reservation are history, not occupancy.
    rebooked, cand := book(t, svc, cust, friday, "18:00", 3, 90)
    assert.Equal(t, []uint64{tableID}, cand.TableIDs)
    assert.NotEqual(t, res.ID, rebooked.ID)

    asg, err := st.AssignmentsFor(context.Background(), res.ID)
    require.NoError(t, err)
    assert.Len(t, asg, 1, "cancelled reservation keeps its assignment history")
}

func TestNoShowFreesTheTable(t *testing.T) {
    st := memstore.New()
    seedAllWeek(t, st, "17:00", "22:00", "21:00")
    addTable(t, st, 1, 2, 4, false)
    cust := addCustomer(t, st, "remy")
    svc := newService(st)

    res, _ := book(t, svc, cust, friday, "18:00", 3, 90)
    _, err := svc.ChangeStatus(context.Background(), res.ID, model.StatusConfirmed)
    require.NoError(t, err)
    _, err = svc.ChangeStatus(context.Background(), res.ID, model.StatusNoShow)
    require.NoError(t, err)

    book(t, svc, cust, friday, "18:00", 3, 90)
}

func TestUpdateMovesToFittingTable(t *testing.T) {
    st := memstore.New()
    seedAllWeek(t, st, "17:00", "22:00", "21:00")
    small := addTable(t, st, 1, 2, 4, false)
    large := addTable(t, st, 2, 4, 8, false)
    cust := addCustomer(t, st, "tess")
    svc := newService(st)

    res, cand := book(t, svc, cust, friday, "18:00", 3, 90)
    require.Equal(t, []uint64{small}, cand.TableIDs)

    party := 6
    updated, cand, err := svc.UpdateReservation(context.Background(), res.ID, booking.UpdateRequest{
        PartySize: &party,
    })
    require.NoError(t, err)
    assert.Equal(t, 6, updated.PartySize)
    assert.Equal(t, []uint64{large}, cand.TableIDs)

    // The small table was released in the same step.
    _, cand2 := book(t, svc, cust, friday, "18:00", 3, 90)
    assert.Equal(t, []uint64{small}, cand2.TableIDs)
}

func TestUpdateKeepsTableOnTimeShift(t *testing.T) {
    st := memstore.New()
    seedAllWeek(t, st, "17:00", "22:00", "21:00")
    tableID := addTable(t, st, 1, 2, 4, false)
    cust := addCustomer(t, st, "finn")
    svc := newService(st)

    res, _ := book(t, svc, cust, friday, "18:00", 3, 90)

    // Moving within the same evening re-seats the same table; the
    // reservation does not conflict with itself.
    start := at(t, "20:00")
    updated, cand, err := svc.UpdateReservation(context.Background(), res.ID, booking.UpdateRequest{
        StartTime: &start,
    })
    require.NoError(t, err)
    assert.Equal(t, []uint64{tableID}, cand.TableIDs)
    assert.Equal(t, at(t, "20:00"), updated.StartTime)
}

func TestUpdateExhaustionLeavesOriginal(t *testing.T) {
    st := memstore.New()
    seedAllWeek(t, st, "17:00", "22:00", "21:00")
    tableID := addTable(t, st, 1, 2, 4, false)
    cust := addCustomer(t, st, "gale")
    svc := newService(st)

    res, _ := book(t, svc, cust, friday, "18:00", 3, 90)

    // Nothing seats nine guests here.
    party := 9
    _, _, err := svc.UpdateReservation(context.Background(), res.ID, booking.UpdateRequest{
        PartySize: &party,
    })
    var noAvail *booking.NoAvailabilityError
    require.ErrorAs(t, err, &noAvail)

    cur, asg, err := svc.GetReservation(context.Background(), res.ID)
    require.NoError(t, err)
    assert.Equal(t, 3, cur.PartySize)
    require.Len(t, asg, 1)
    assert.Equal(t, tableID, asg[0].TableID)
}

func TestUpdateRejectsFinalizedReservation(t *testing.T) {
    st := memstore.New()
    seedAllWeek(t, st, "17:00", "22:00", "21:00")
    addTable(t, st, 1, 2, 4, false)
    cust := addCustomer(t, st, "iggy")
    svc := newService(st)

    res, _ := book(t, svc, cust, friday, "18:00", 3, 90)
    _, err := svc.CancelReservation(context.Background(), res.ID)
    require.NoError(t, err)

    party := 2
    _, _, err = svc.UpdateReservation(context.Background(), res.ID, booking.UpdateRequest{PartySize: &party})
    var verr *booking.ValidationError
    require.ErrorAs(t, err, &verr)
}

func TestDeleteReservationCascades(t *testing.T) {
    st := memstore.New()
    seedAllWeek(t, st, "17:00", "22:00", "21:00")
    addTable(t, st, 1, 2, 4, false)
    cust := addCustomer(t, st, "wren")
    svc := newService(st)

    res, _ := book(t, svc, cust, friday, "18:00", 3, 90)
    require.NoError(t, svc.DeleteReservation(context.Background(), res.ID))

    _, _, err := svc.GetReservation(context.Background(), res.ID)
    var nf *booking.NotFoundError
    require.ErrorAs(t, err, &nf)

    asg, err := st.AssignmentsFor(context.Background(), res.ID)
    require.NoError(t, err)
    assert.Empty(t, asg, "assignment rows go with the reservation")

    // The window is bookable again.
    book(t, svc, cust, friday, "18:00", 3, 90)

    err = svc.DeleteReservation(context.Background(), res.ID)
    require.ErrorAs(t, err, &nf)
}

func TestListReservationsFilters(t *testing.T) {
    st := memstore.New()
    seedAllWeek(t, st, "17:00", "22:00", "21:00")
    addTable(t, st, 1, 2, 4, false)
    addTable(t, st, 2, 2, 4, false)
    cust := addCustomer(t, st, "uma")
    svc := newService(st)

    a, _ := book(t, svc, cust, friday, "18:00", 2, 60)
    b, _ := book(t, svc, cust, "2026-09-05", "19:00", 2, 60)
    _, err := svc.CancelReservation(context.Background(), b.ID)
    require.NoError(t, err)

    day := mustDate(t, friday)
    got, err := svc.ListReservations(context.Background(), &day, nil)
    require.NoError(t, err)
    require.Len(t, got, 1)
    assert.Equal(t, a.ID, got[0].ID)

    status := model.StatusCancelled
    got, err = svc.ListReservations(context.Background(), nil, &status)
    require.NoError(t, err)
    require.Len(t, got, 1)
    assert.Equal(t, b.ID, got[0].ID)

    bogus := model.ReservationStatus("waiting")
    _, err = svc.ListReservations(context.Background(), nil, &bogus)
    var verr *booking.ValidationError
    require.ErrorAs(t, err, &verr)
}

func TestResolveCustomer(t *testing.T) {
    st := memstore.New()
    svc := newService(st)
    ctx := context.Background()

    // Email matches win over creating a new record.
    first, err := svc.ResolveCustomer(ctx, "Ada Calhoun", "ada@example.com", "", 2)
    require.NoError(t, err)
    again, err := svc.ResolveCustomer(ctx, "A. Calhoun", "ada@example.com", "", 4)
    require.NoError(t, err)
    assert.Equal(t, first.ID, again.ID)

    // Phone is the fallback key.
    byPhone, err := svc.ResolveCustomer(ctx, "Li Wei", "", "+4915550100", 2)
    require.NoError(t, err)
    samePhone, err := svc.ResolveCustomer(ctx, "Li Wei", "", "+4915550100", 3)
    require.NoError(t, err)
    assert.Equal(t, byPhone.ID, samePhone.ID)

    // Small walk-ins with no contact collapse onto a placeholder
    // derived from the name.
    walkIn, err := svc.ResolveCustomer(ctx, "Sam Smith", "", "", 2)
    require.NoError(t, err)
    require.NotNil(t, walkIn.Email)
    assert.Equal(t, booking.PlaceholderEmail("Sam Smith"), *walkIn.Email)
    repeat, err := svc.ResolveCustomer(ctx, "  sam smith ", "", "", 3)
    require.NoError(t, err)
    assert.Equal(t, walkIn.ID, repeat.ID)

    // Large parties must leave real contact info.
    _, err = svc.ResolveCustomer(ctx, "Big Group", "", "", 6)
    var verr *booking.ValidationError
    require.ErrorAs(t, err, &verr)

    _, err = svc.ResolveCustomer(ctx, "   ", "x@example.com", "", 2)
    require.ErrorAs(t, err, &verr)
    assert.Equal(t, "customer_name", verr.Field)
}

func TestPlaceholderEmailDeterministic(t *testing.T) {
    a := booking.PlaceholderEmail("Sam Smith")
    b := booking.PlaceholderEmail("  SAM SMITH ")
    assert.Equal(t, a, b)
    assert.Contains(t, a, "@restaurant.local")
    assert.NotEqual(t, a, booking.PlaceholderEmail("Sam Smithe"))
}
