package tally

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapLoader serves fixed totals per day and counts loads.
type mapLoader struct {
	days  map[string]map[string]int64
	loads map[string]int
	err   error
}

func (m *mapLoader) LoadDay(_ context.Context, day string) (*Totals, error) {
	if m.loads == nil {
		m.loads = map[string]int{}
	}
	m.loads[day]++
	if m.err != nil {
		return nil, m.err
	}
	t := NewTotals()
	for site, secs := range m.days[day] {
		t.Add(site, secs)
	}
	return t, nil
}

func TestAdd_Accumulates(t *testing.T) {
	a := NewAggregator()
	for i := 0; i < 3; i++ {
		a.Add("2024-06-01", "github", 5)
	}

	view := a.DailyView("2024-06-01")
	got, ok := view.Seconds("github")
	require.True(t, ok)
	assert.Equal(t, int64(15), got)

	_, ok = view.Seconds("youtube")
	assert.False(t, ok, "untouched site should be absent, not zero")
}

func TestAdd_KeepsDaysSeparate(t *testing.T) {
	a := NewAggregator()
	a.Add("2024-06-01", "github", 5)
	a.Add("2024-06-02", "github", 10)

	d1, _ := a.DailyView("2024-06-01").Seconds("github")
	d2, _ := a.DailyView("2024-06-02").Seconds("github")
	assert.Equal(t, int64(5), d1)
	assert.Equal(t, int64(10), d2)
	assert.Equal(t, []string{"2024-06-01", "2024-06-02"}, a.Days())
}

func TestAdd_IgnoresNegative(t *testing.T) {
	a := NewAggregator()
	a.Add("2024-06-01", "github", -5)

	assert.False(t, a.Has("2024-06-01"))
	assert.Equal(t, 0, a.DailyView("2024-06-01").Len())
}

func TestAdd_ZeroSecondsCreatesEntry(t *testing.T) {
	a := NewAggregator()
	a.Add("2024-06-01", "github", 0)

	got, ok := a.DailyView("2024-06-01").Seconds("github")
	assert.True(t, ok)
	assert.Equal(t, int64(0), got)
}

func TestDailyView_PreservesInsertionOrder(t *testing.T) {
	a := NewAggregator()
	a.Add("2024-06-01", "youtube", 5)
	a.Add("2024-06-01", "github", 5)
	a.Add("2024-06-01", "youtube", 5)
	a.Add("2024-06-01", "Zenn", 5)

	assert.Equal(t, []string{"youtube", "github", "Zenn"}, a.DailyView("2024-06-01").Labels())
}

func TestDailyView_IsACopy(t *testing.T) {
	a := NewAggregator()
	a.Add("2024-06-01", "github", 5)

	view := a.DailyView("2024-06-01")
	view.Add("github", 100)

	got, _ := a.DailyView("2024-06-01").Seconds("github")
	assert.Equal(t, int64(5), got)
}

func TestDailyView_UnknownDayIsEmpty(t *testing.T) {
	a := NewAggregator()
	view := a.DailyView("2030-01-01")
	require.NotNil(t, view)
	assert.Equal(t, 0, view.Len())
	assert.False(t, a.Has("2030-01-01"), "reading must not create the day")
}

func TestMultiDayView_SumsPersistedAndMemory(t *testing.T) {
	loader := &mapLoader{days: map[string]map[string]int64{
		"2024-05-30": {"github": 100, "youtube": 50},
		"2024-05-31": {"github": 20},
	}}

	a := NewAggregator()
	a.Add("2024-06-01", "github", 5)
	a.Add("2024-06-01", "qiita", 10)

	got, err := a.MultiDayView(context.Background(), loader,
		[]string{"2024-06-01", "2024-05-31", "2024-05-30"})
	require.NoError(t, err)

	assert.Equal(t, map[string]int64{
		"github":  125,
		"qiita":   10,
		"youtube": 50,
	}, got.Map())
	assert.Zero(t, loader.loads["2024-06-01"], "in-memory day must not be loaded")
}

func TestMultiDayView_EqualsSumOfDailyTotals(t *testing.T) {
	loader := &mapLoader{days: map[string]map[string]int64{
		"2024-05-29": {"a": 1, "b": 2},
		"2024-05-30": {"b": 3, "c": 4},
		"2024-05-31": {"a": 5},
	}}
	days := []string{"2024-05-29", "2024-05-30", "2024-05-31"}

	want := map[string]int64{}
	for _, d := range days {
		for site, secs := range loader.days[d] {
			want[site] += secs
		}
	}

	got, err := NewAggregator().MultiDayView(context.Background(), loader, days)
	require.NoError(t, err)
	assert.Equal(t, want, got.Map())
}

func TestMultiDayView_DuplicateDaysCountedOnce(t *testing.T) {
	loader := &mapLoader{days: map[string]map[string]int64{
		"2024-05-31": {"github": 20},
	}}
	a := NewAggregator()
	a.Add("2024-06-01", "github", 5)

	got, err := a.MultiDayView(context.Background(), loader,
		[]string{"2024-06-01", "2024-05-31", "2024-06-01", "2024-05-31"})
	require.NoError(t, err)

	secs, _ := got.Seconds("github")
	assert.Equal(t, int64(25), secs)
	assert.Equal(t, 1, loader.loads["2024-05-31"])
}

func TestMultiDayView_MissingDaysContributeNothing(t *testing.T) {
	loader := &mapLoader{}
	got, err := NewAggregator().MultiDayView(context.Background(), loader, []string{"2024-01-01"})
	require.NoError(t, err)
	assert.Equal(t, 0, got.Len())
}

func TestMultiDayView_NilLoaderUsesMemoryOnly(t *testing.T) {
	a := NewAggregator()
	a.Add("2024-06-01", "github", 5)

	got, err := a.MultiDayView(context.Background(), nil, []string{"2024-06-01", "2024-05-31"})
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"github": 5}, got.Map())
}

func TestMultiDayView_LoaderError(t *testing.T) {
	loader := &mapLoader{err: errors.New("disk gone")}
	_, err := NewAggregator().MultiDayView(context.Background(), loader, []string{"2024-05-31"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2024-05-31")
	assert.ErrorIs(t, err, loader.err)
}

func TestSeed_MergesPersistedDay(t *testing.T) {
	persisted := NewTotals()
	persisted.Add("youtube", 60)
	persisted.Add("github", 30)

	a := NewAggregator()
	a.Seed("2024-06-01", persisted)
	a.Add("2024-06-01", "github", 5)
	a.Add("2024-06-01", "Zenn", 5)

	view := a.DailyView("2024-06-01")
	assert.Equal(t, []string{"youtube", "github", "Zenn"}, view.Labels())
	assert.Equal(t, map[string]int64{"youtube": 60, "github": 35, "Zenn": 5}, view.Map())
}

func TestSeed_EmptyTotalsDoesNotCreateDay(t *testing.T) {
	a := NewAggregator()
	a.Seed("2024-06-01", NewTotals())
	a.Seed("2024-06-02", nil)
	assert.Empty(t, a.Days())
}

func TestWeekDays(t *testing.T) {
	today := time.Date(2024, 3, 2, 15, 0, 0, 0, time.Local)
	assert.Equal(t, []string{
		"2024-03-02", "2024-03-01", "2024-02-29", "2024-02-28",
		"2024-02-27", "2024-02-26", "2024-02-25",
	}, WeekDays(today, 7))
}

func TestTotals_ZeroValueUsable(t *testing.T) {
	var tot Totals
	tot.Add("a", 1)
	tot.Add("a", 2)
	assert.Equal(t, int64(3), tot.Sum())
	assert.Equal(t, []Site{{Label: "a", Seconds: 3}}, tot.Sites())
}
