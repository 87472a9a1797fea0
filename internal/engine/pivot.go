package engine

import (
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// PeriodType selects the bucketing granularity of a pivot matrix.
type PeriodType int

const (
	PeriodDaily PeriodType = iota
	PeriodMonthly
)

// PivotEntry is one persisted entry flattened for aggregation.
type PivotEntry struct {
	Location   string
	Date       time.Time
	VolumeKL   decimal.Decimal
	Cost       decimal.Decimal
	Comment    string
	RecordedAt time.Time // creation time, orders comments within a bucket
	ID         uint
}

// Totals accumulates volume (KL) and cost.
type Totals struct {
	VolumeKL decimal.Decimal
	Cost     decimal.Decimal
}

func (t Totals) plus(v, c decimal.Decimal) Totals {
	return Totals{VolumeKL: t.VolumeKL.Add(v), Cost: t.Cost.Add(c)}
}

// Cell is one location × period bucket.
type Cell struct {
	VolumeKL decimal.Decimal
	Cost     decimal.Decimal
	Comments []string
}

// Row is one location's cells across all periods plus its total.
type Row struct {
	Location string
	Cells    map[string]Cell
	Total    Totals
}

// Matrix is the location × period pivot with row, column and grand totals.
type Matrix struct {
	Periods      []string
	Rows         []Row
	ColumnTotals map[string]Totals
	GrandTotal   Totals
}

// DailyPeriods returns the day-number keys "1".."N" for year/month.
func DailyPeriods(year int, month time.Month) []string {
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	keys := make([]string, 0, last)
	for d := 1; d <= last; d++ {
		keys = append(keys, strconv.Itoa(d))
	}
	return keys
}

// MonthlyPeriods returns "YYYY-MM" keys for the n months ending at end's month.
func MonthlyPeriods(end time.Time, n int) []string {
	if n < 1 {
		n = 1
	}
	keys := make([]string, 0, n)
	first := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(n - 1), 0)
	for m := 0; m < n; m++ {
		keys = append(keys, first.AddDate(0, m, 0).Format("2006-01"))
	}
	return keys
}

// PeriodKey buckets a date under the given granularity.
func PeriodKey(pt PeriodType, d time.Time) string {
	if pt == PeriodMonthly {
		return d.Format("2006-01")
	}
	return strconv.Itoa(d.Day())
}

// BuildMatrix pivots entries into location × period cells. Entries whose
// period key is not in periods are ignored. The output is stable under
// permutation of the input: rows sort by location name and comments within a
// cell order by RecordedAt then id, never by slice position.
func BuildMatrix(entries []PivotEntry, pt PeriodType, periods []string) Matrix {
	inRange := make(map[string]bool, len(periods))
	for _, p := range periods {
		inRange[p] = true
	}

	buckets := make(map[string]map[string][]PivotEntry) // location -> period -> entries
	for _, e := range entries {
		key := PeriodKey(pt, e.Date)
		if !inRange[key] {
			continue
		}
		if buckets[e.Location] == nil {
			buckets[e.Location] = make(map[string][]PivotEntry)
		}
		buckets[e.Location][key] = append(buckets[e.Location][key], e)
	}

	m := Matrix{
		Periods:      periods,
		ColumnTotals: make(map[string]Totals, len(periods)),
	}
	for _, p := range periods {
		m.ColumnTotals[p] = Totals{}
	}

	names := make([]string, 0, len(buckets))
	for name := range buckets {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		row := Row{Location: name, Cells: make(map[string]Cell, len(periods))}
		for _, p := range periods {
			cellEntries := buckets[name][p]
			sort.Slice(cellEntries, func(i, j int) bool {
				if !cellEntries[i].RecordedAt.Equal(cellEntries[j].RecordedAt) {
					return cellEntries[i].RecordedAt.Before(cellEntries[j].RecordedAt)
				}
				return cellEntries[i].ID < cellEntries[j].ID
			})

			cell := Cell{}
			for _, e := range cellEntries {
				cell.VolumeKL = cell.VolumeKL.Add(e.VolumeKL)
				cell.Cost = cell.Cost.Add(e.Cost)
				if e.Comment != "" {
					cell.Comments = append(cell.Comments, e.Comment)
				}
			}
			row.Cells[p] = cell
			row.Total = row.Total.plus(cell.VolumeKL, cell.Cost)
			m.ColumnTotals[p] = m.ColumnTotals[p].plus(cell.VolumeKL, cell.Cost)
		}
		m.GrandTotal = m.GrandTotal.plus(row.Total.VolumeKL, row.Total.Cost)
		m.Rows = append(m.Rows, row)
	}

	return m
}
