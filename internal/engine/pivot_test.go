package engine

import (
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pivotFixture() []PivotEntry {
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	return []PivotEntry{
		{ID: 1, Location: "Hostel A", Date: d("2024-03-02"), VolumeKL: dec("12"), Cost: dec("960"), Comment: "morning load", RecordedAt: base},
		{ID: 2, Location: "Hostel A", Date: d("2024-03-02"), VolumeKL: dec("6"), Cost: dec("480"), Comment: "evening load", RecordedAt: base.Add(4 * time.Hour)},
		{ID: 3, Location: "Hostel A", Date: d("2024-03-15"), VolumeKL: dec("12"), Cost: dec("960")},
		{ID: 4, Location: "Kitchen", Date: d("2024-03-02"), VolumeKL: dec("5"), Cost: dec("400")},
		{ID: 5, Location: "Kitchen", Date: d("2024-03-20"), VolumeKL: dec("10"), Cost: dec("800"), Comment: "pump repaired", RecordedAt: base.Add(24 * time.Hour)},
	}
}

func TestBuildMatrixDailyAdditivity(t *testing.T) {
	m := BuildMatrix(pivotFixture(), PeriodDaily, DailyPeriods(2024, time.March))

	require.Len(t, m.Rows, 2)
	assert.True(t, m.GrandTotal.VolumeKL.Equal(dec("45")), "got %s", m.GrandTotal.VolumeKL)
	assert.True(t, m.GrandTotal.Cost.Equal(dec("3600")))

	var rowVolume, rowCost decimal.Decimal
	for _, row := range m.Rows {
		rowVolume = rowVolume.Add(row.Total.VolumeKL)
		rowCost = rowCost.Add(row.Total.Cost)
	}
	assert.True(t, rowVolume.Equal(m.GrandTotal.VolumeKL))
	assert.True(t, rowCost.Equal(m.GrandTotal.Cost))

	var colVolume, colCost decimal.Decimal
	for _, p := range m.Periods {
		colVolume = colVolume.Add(m.ColumnTotals[p].VolumeKL)
		colCost = colCost.Add(m.ColumnTotals[p].Cost)
	}
	assert.True(t, colVolume.Equal(m.GrandTotal.VolumeKL))
	assert.True(t, colCost.Equal(m.GrandTotal.Cost))
}

func TestBuildMatrixBucketsAndComments(t *testing.T) {
	m := BuildMatrix(pivotFixture(), PeriodDaily, DailyPeriods(2024, time.March))

	require.Equal(t, "Hostel A", m.Rows[0].Location)
	cell := m.Rows[0].Cells["2"]
	assert.True(t, cell.VolumeKL.Equal(dec("18")))
	assert.Equal(t, []string{"morning load", "evening load"}, cell.Comments)

	empty := m.Rows[0].Cells["3"]
	assert.True(t, empty.VolumeKL.IsZero())
	assert.Empty(t, empty.Comments)
}

func TestBuildMatrixOrderIndependent(t *testing.T) {
	periods := DailyPeriods(2024, time.March)
	want := BuildMatrix(pivotFixture(), PeriodDaily, periods)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 10; i++ {
		entries := pivotFixture()
		rng.Shuffle(len(entries), func(a, b int) { entries[a], entries[b] = entries[b], entries[a] })

		got := BuildMatrix(entries, PeriodDaily, periods)
		require.Equal(t, len(want.Rows), len(got.Rows))
		for r := range want.Rows {
			assert.Equal(t, want.Rows[r].Location, got.Rows[r].Location)
			assert.True(t, want.Rows[r].Total.VolumeKL.Equal(got.Rows[r].Total.VolumeKL))
			for _, p := range periods {
				assert.Equal(t, want.Rows[r].Cells[p].Comments, got.Rows[r].Cells[p].Comments)
			}
		}
		assert.True(t, want.GrandTotal.Cost.Equal(got.GrandTotal.Cost))
	}
}

func TestBuildMatrixMonthly(t *testing.T) {
	entries := []PivotEntry{
		{ID: 1, Location: "Hostel A", Date: d("2024-01-10"), VolumeKL: dec("20"), Cost: dec("1500")},
		{ID: 2, Location: "Hostel A", Date: d("2024-02-10"), VolumeKL: dec("25"), Cost: dec("1800")},
		{ID: 3, Location: "Hostel A", Date: d("2023-12-31"), VolumeKL: dec("99"), Cost: dec("9999")}, // outside range
	}
	periods := MonthlyPeriods(d("2024-03-15"), 3)
	require.Equal(t, []string{"2024-01", "2024-02", "2024-03"}, periods)

	m := BuildMatrix(entries, PeriodMonthly, periods)
	require.Len(t, m.Rows, 1)
	assert.True(t, m.Rows[0].Cells["2024-01"].VolumeKL.Equal(dec("20")))
	assert.True(t, m.Rows[0].Cells["2024-02"].VolumeKL.Equal(dec("25")))
	assert.True(t, m.GrandTotal.VolumeKL.Equal(dec("45")))
}

func TestDailyPeriodsMonthLengths(t *testing.T) {
	assert.Len(t, DailyPeriods(2024, time.February), 29) // leap year
	assert.Len(t, DailyPeriods(2023, time.February), 28)
	assert.Len(t, DailyPeriods(2024, time.December), 31)
}

func TestMonthlyPeriodsCrossYear(t *testing.T) {
	periods := MonthlyPeriods(d("2024-01-20"), 3)
	assert.Equal(t, []string{"2023-11", "2023-12", "2024-01"}, periods)
}
