package memstore_test

import (
    "context"
    "errors"
    "sync"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/restaurant-table-reservation/internal/booking"
    "github.com/iliyamo/restaurant-table-reservation/internal/memstore"
    "github.com/iliyamo/restaurant-table-reservation/internal/model"
)

func mkTable(t *testing.T, st *memstore.Store, number, max int) *model.Table {
    t.Helper()
    tb := &model.Table{TableNumber: number, MinCapacity: 2, MaxCapacity: max, IsActive: true}
    require.NoError(t, st.CreateTable(context.Background(), tb))
    return tb
}

func mkReservation(t *testing.T, st *memstore.Store, tableID uint64, date string, start string, minutes int) *model.Reservation {
    t.Helper()
    day, err := model.ParseDate(date)
    require.NoError(t, err)
    tod, err := model.ParseTimeOfDay(start)
    require.NoError(t, err)
    res := &model.Reservation{
        CustomerID:      1,
        PartySize:       2,
        Date:            day,
        StartTime:       tod,
        DurationMinutes: minutes,
        Status:          model.StatusPending,
    }
    err = st.WithTables(context.Background(), []uint64{tableID}, func(tx booking.AllocTx) error {
        if err := tx.CreateReservation(res); err != nil {
            return err
        }
        return tx.AddAssignments(res.ID, []uint64{tableID})
    })
    require.NoError(t, err)
    return res
}

func TestWithTablesDiscardsStagedWritesOnError(t *testing.T) {
    st := memstore.New()
    tb := mkTable(t, st, 1, 4)

    sentinel := errors.New("abort")
    err := st.WithTables(context.Background(), []uint64{tb.ID}, func(tx booking.AllocTx) error {
        res := &model.Reservation{CustomerID: 1, PartySize: 2, Status: model.StatusPending}
        if err := tx.CreateReservation(res); err != nil {
            return err
        }
        if err := tx.AddAssignments(res.ID, []uint64{tb.ID}); err != nil {
            return err
        }
        return sentinel
    })
    require.ErrorIs(t, err, sentinel)

    all, err := st.ListReservations(context.Background(), nil, nil)
    require.NoError(t, err)
    assert.Empty(t, all, "staged rows must not land after a callback error")
}

func TestWithTablesOppositeOrdersDoNotDeadlock(t *testing.T) {
    st := memstore.New()
    a := mkTable(t, st, 1, 4)
    b := mkTable(t, st, 2, 4)

    var wg sync.WaitGroup
    for i := 0; i < 2; i++ {
        order := []uint64{a.ID, b.ID}
        if i == 1 {
            order = []uint64{b.ID, a.ID}
        }
        wg.Add(1)
        go func(ids []uint64) {
            defer wg.Done()
            for n := 0; n < 200; n++ {
                err := st.WithTables(context.Background(), ids, func(tx booking.AllocTx) error {
                    return nil
                })
                if err != nil {
                    t.Error(err)
                    return
                }
            }
        }(order)
    }
    wg.Wait()
}

func TestWithTablesHonoursContext(t *testing.T) {
    st := memstore.New()
    tb := mkTable(t, st, 1, 4)

    ctx, cancel := context.WithCancel(context.Background())
    cancel()
    called := false
    err := st.WithTables(ctx, []uint64{tb.ID}, func(tx booking.AllocTx) error {
        called = true
        return nil
    })
    require.ErrorIs(t, err, context.Canceled)
    assert.False(t, called)
}

func TestOccupiedWindowsFilters(t *testing.T) {
    st := memstore.New()
    tb := mkTable(t, st, 1, 4)
    ctx := context.Background()

    occupying := mkReservation(t, st, tb.ID, "2026-09-04", "18:00", 90)
    otherDay := mkReservation(t, st, tb.ID, "2026-09-05", "18:00", 90)
    released := mkReservation(t, st, tb.ID, "2026-09-04", "20:00", 60)
    err := st.WithTables(ctx, []uint64{tb.ID}, func(tx booking.AllocTx) error {
        return tx.SetStatus(released.ID, model.StatusCancelled)
    })
    require.NoError(t, err)

    day, _ := model.ParseDate("2026-09-04")
    occ, err := st.OccupiedWindows(ctx, day, 0)
    require.NoError(t, err)
    require.Len(t, occ, 1)
    assert.Equal(t, occupying.ID, occ[0].ReservationID)
    assert.Equal(t, occupying.EndTime(), occ[0].End)

    // Excluding the holder leaves the date empty.
    occ, err = st.OccupiedWindows(ctx, day, occupying.ID)
    require.NoError(t, err)
    assert.Empty(t, occ)

    _ = otherDay
}

func TestChairRowsFollowCapacity(t *testing.T) {
    st := memstore.New()
    ctx := context.Background()
    tb := mkTable(t, st, 1, 4)

    chairs, err := st.ChairsFor(ctx, tb.ID)
    require.NoError(t, err)
    require.Len(t, chairs, 4)
    for i, c := range chairs {
        assert.Equal(t, i+1, c.ChairNumber)
    }

    tb.MaxCapacity = 2
    require.NoError(t, st.UpdateTable(ctx, tb))
    chairs, err = st.ChairsFor(ctx, tb.ID)
    require.NoError(t, err)
    assert.Len(t, chairs, 2)

    tb.MaxCapacity = 6
    require.NoError(t, st.UpdateTable(ctx, tb))
    chairs, err = st.ChairsFor(ctx, tb.ID)
    require.NoError(t, err)
    assert.Len(t, chairs, 6)
}

func TestDeleteTableCascades(t *testing.T) {
    st := memstore.New()
    ctx := context.Background()
    tb := mkTable(t, st, 1, 4)
    res := mkReservation(t, st, tb.ID, "2026-09-04", "18:00", 90)

    require.NoError(t, st.DeleteTable(ctx, tb.ID))

    got, err := st.TableByID(ctx, tb.ID)
    require.NoError(t, err)
    assert.Nil(t, got)

    chairs, err := st.ChairsFor(ctx, tb.ID)
    require.NoError(t, err)
    assert.Empty(t, chairs)

    asg, err := st.AssignmentsFor(ctx, res.ID)
    require.NoError(t, err)
    assert.Empty(t, asg)
}

func TestUpsertHoursOverwriteByKey(t *testing.T) {
    st := memstore.New()
    ctx := context.Background()

    open, _ := model.ParseTimeOfDay("17:00")
    close, _ := model.ParseTimeOfDay("22:00")
    last, _ := model.ParseTimeOfDay("21:00")
    h := &model.OperatingHours{DayOfWeek: time.Friday, OpenTime: open, CloseTime: close, LastSeating: last}
    require.NoError(t, st.UpsertWeeklyHours(ctx, h))
    firstID := h.ID

    lateOpen, _ := model.ParseTimeOfDay("18:00")
    h2 := &model.OperatingHours{DayOfWeek: time.Friday, OpenTime: lateOpen, CloseTime: close, LastSeating: last}
    require.NoError(t, st.UpsertWeeklyHours(ctx, h2))
    assert.Equal(t, firstID, h2.ID, "upsert keeps the row identity")

    rows, err := st.ListWeeklyHours(ctx)
    require.NoError(t, err)
    require.Len(t, rows, 1)
    assert.Equal(t, lateOpen, rows[0].OpenTime)

    day, _ := model.ParseDate("2026-12-24")
    sh := &model.SpecialHours{Date: day, IsClosed: true}
    require.NoError(t, st.UpsertSpecialHours(ctx, sh))
    sh2 := &model.SpecialHours{Date: day, IsClosed: false, OpenTime: &open, CloseTime: &close, LastSeating: &last}
    require.NoError(t, st.UpsertSpecialHours(ctx, sh2))
    assert.Equal(t, sh.ID, sh2.ID)

    deleted, err := st.DeleteSpecialHours(ctx, day)
    require.NoError(t, err)
    assert.True(t, deleted)
    deleted, err = st.DeleteSpecialHours(ctx, day)
    require.NoError(t, err)
    assert.False(t, deleted)
}

func TestUpdateTouchesTimestamp(t *testing.T) {
    st := memstore.New()
    ctx := context.Background()
    tb := mkTable(t, st, 1, 4)
    created := tb.UpdatedAt

    time.Sleep(5 * time.Millisecond)
    tb.Location = nil
    tb.MaxCapacity = 5
    require.NoError(t, st.UpdateTable(ctx, tb))
    assert.True(t, tb.UpdatedAt.After(created), "updates must refresh the timestamp")

    res := mkReservation(t, st, tb.ID, "2026-09-04", "18:00", 90)
    firstStamp := res.UpdatedAt
    time.Sleep(5 * time.Millisecond)
    err := st.WithTables(ctx, []uint64{tb.ID}, func(tx booking.AllocTx) error {
        return tx.SetStatus(res.ID, model.StatusConfirmed)
    })
    require.NoError(t, err)
    cur, err := st.ReservationByID(ctx, res.ID)
    require.NoError(t, err)
    assert.True(t, cur.UpdatedAt.After(firstStamp))
}
