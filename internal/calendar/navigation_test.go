package calendar

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(y int, m time.Month, d int) FixedClock {
	return FixedClock{T: time.Date(y, m, d, 10, 30, 0, 0, time.Local)}
}

func TestNavigator_StartsOnCurrentMonth(t *testing.T) {
	store, _ := openTestStore(t)
	nav := NewNavigator(store, fixedClock(2025, time.June, 15), time.Sunday)

	assert.Equal(t, YearMonth{2025, time.June}, nav.Displayed())
	_, ok := nav.Selected()
	assert.False(t, ok)
	assert.Nil(t, nav.SelectedEvents())
}

func TestNavigator_NavigateRollsOverYears(t *testing.T) {
	store, _ := openTestStore(t)
	nav := NewNavigator(store, fixedClock(2025, time.January, 5), time.Sunday)

	nav.Navigate(Previous)
	assert.Equal(t, YearMonth{2024, time.December}, nav.Displayed())

	nav.Navigate(Next)
	nav.Navigate(Next)
	assert.Equal(t, YearMonth{2025, time.February}, nav.Displayed())

	nav.Show(YearMonth{2025, time.December})
	nav.Navigate(Next)
	assert.Equal(t, YearMonth{2026, time.January}, nav.Displayed())

	nav.Today()
	assert.Equal(t, YearMonth{2025, time.January}, nav.Displayed())
}

func TestNavigator_NavigateKeepsSelection(t *testing.T) {
	store, _ := openTestStore(t)
	nav := NewNavigator(store, fixedClock(2025, time.June, 1), time.Sunday)

	nav.Select(&june15)
	nav.Navigate(Next)

	sel, ok := nav.Selected()
	require.True(t, ok)
	assert.Equal(t, june15, sel)
	assert.Equal(t, YearMonth{2025, time.July}, nav.Displayed())
}

func TestNavigator_SelectAndClear(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()
	_, err := store.Add(ctx, june15, ev("Standup", "09:00", "09:30"))
	require.NoError(t, err)

	nav := NewNavigator(store, fixedClock(2025, time.March, 1), time.Sunday)

	// Selecting outside the displayed month is allowed.
	d := june15
	nav.Select(&d)
	d.Day = 1 // caller's copy must not leak in
	sel, ok := nav.Selected()
	require.True(t, ok)
	assert.Equal(t, june15, sel)
	assert.Equal(t, []string{"Standup"}, titles(nav.SelectedEvents()))

	nav.Select(nil)
	_, ok = nav.Selected()
	assert.False(t, ok)
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		from YearMonth
		n    int
		want YearMonth
	}{
		{YearMonth{2025, time.January}, -1, YearMonth{2024, time.December}},
		{YearMonth{2025, time.December}, 1, YearMonth{2026, time.January}},
		{YearMonth{2025, time.June}, 0, YearMonth{2025, time.June}},
		{YearMonth{2025, time.March}, -15, YearMonth{2023, time.December}},
		{YearMonth{2025, time.March}, 22, YearMonth{2027, time.January}},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, tc.from.AddMonths(tc.n), "%s %+d", tc.from, tc.n)
	}
}

func TestLayoutCells_WednesdayStartThirtyDays(t *testing.T) {
	cells := LayoutCells(3, 30)
	require.Len(t, cells, 35)
	assert.Equal(t, 35, CellCount(3, 30))

	for i := 0; i <= 2; i++ {
		assert.True(t, cells[i].Placeholder, "cell %d", i)
	}
	assert.False(t, cells[3].Placeholder)
	assert.Equal(t, 1, cells[3].Day)
	assert.Equal(t, 30, cells[32].Day)
	assert.True(t, cells[33].Placeholder)
	assert.True(t, cells[34].Placeholder)

	day, ok := DayForCell(32, 3, 30)
	assert.True(t, ok)
	assert.Equal(t, 30, day)
	_, ok = DayForCell(33, 3, 30)
	assert.False(t, ok)
}

func TestCellCount(t *testing.T) {
	assert.Equal(t, 28, CellCount(0, 28), "February starting on the first column fills exactly four weeks")
	assert.Equal(t, 42, CellCount(6, 31))
	assert.Equal(t, 35, CellCount(0, 31))
}

func TestNavigator_Grid(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()
	_, err := store.Add(ctx, DateKey{2026, 4, 10}, ev("Dentist", "15:00", "16:00"))
	require.NoError(t, err)

	// April 2026 starts on a Wednesday and has 30 days.
	nav := NewNavigator(store, fixedClock(2026, time.April, 8), time.Sunday)
	sel := DateKey{2026, 4, 21}
	nav.Select(&sel)

	g := nav.Grid()
	assert.Equal(t, 3, g.FirstWeekday)
	assert.Equal(t, 30, g.DaysInMonth)
	require.Len(t, g.Cells, 35)
	assert.Len(t, g.Weeks(), 5)

	assert.True(t, g.Cells[0].Placeholder)
	assert.Equal(t, DateKey{2026, 4, 1}, g.Cells[3].Date)

	byDay := map[int]Cell{}
	for _, c := range g.Cells {
		if !c.Placeholder {
			byDay[c.Day] = c
		}
	}
	assert.True(t, byDay[8].Today)
	assert.False(t, byDay[9].Today)
	assert.True(t, byDay[10].HasEvents)
	assert.False(t, byDay[11].HasEvents)
	assert.True(t, byDay[21].Selected)
	assert.True(t, byDay[4].Weekend, "April 4 2026 is a Saturday")
	assert.True(t, byDay[5].Weekend, "April 5 2026 is a Sunday")
	assert.False(t, byDay[6].Weekend)
}

func TestNavigator_GridMondayStart(t *testing.T) {
	store, _ := openTestStore(t)

	// June 2025 starts on a Sunday.
	sunday := NewNavigator(store, fixedClock(2025, time.June, 1), time.Sunday).Grid()
	assert.Equal(t, 0, sunday.FirstWeekday)
	assert.Len(t, sunday.Cells, 35)

	monday := NewNavigator(store, fixedClock(2025, time.June, 1), time.Monday).Grid()
	assert.Equal(t, 6, monday.FirstWeekday)
	assert.Len(t, monday.Cells, 42)
	assert.Equal(t, 1, monday.Cells[6].Day)
}

func TestNavigator_SaveRestore(t *testing.T) {
	store, kv := openTestStore(t)
	ctx := context.Background()

	nav := NewNavigator(store, fixedClock(2025, time.June, 1), time.Sunday)
	nav.Navigate(Next)
	nav.Select(&june15)
	require.NoError(t, nav.Save(ctx, kv))

	restored := NewNavigator(store, fixedClock(2030, time.January, 1), time.Sunday)
	require.NoError(t, restored.Restore(ctx, kv))
	assert.Equal(t, YearMonth{2025, time.July}, restored.Displayed())
	sel, ok := restored.Selected()
	require.True(t, ok)
	assert.Equal(t, june15, sel)

	raw, _, err := kv.Get(ctx, ViewKey)
	require.NoError(t, err)
	assert.JSONEq(t, `{"year":2025,"month":7,"selected":"2025-06-15"}`, string(raw))
}

func TestNavigator_RestoreMissingOrCorrupt(t *testing.T) {
	store, kv := openTestStore(t)
	ctx := context.Background()

	nav := NewNavigator(store, fixedClock(2025, time.June, 1), time.Sunday)
	require.NoError(t, nav.Restore(ctx, kv), "missing view is not an error")
	assert.Equal(t, YearMonth{2025, time.June}, nav.Displayed())

	require.NoError(t, kv.Put(ctx, ViewKey, []byte(`{"year":2025,"month":13}`)))
	assert.Error(t, nav.Restore(ctx, kv))
	assert.Equal(t, YearMonth{2025, time.June}, nav.Displayed())

	require.NoError(t, kv.Put(ctx, ViewKey, []byte(`garbage`)))
	assert.Error(t, nav.Restore(ctx, kv))
	_, ok := nav.Selected()
	assert.False(t, ok)
}
