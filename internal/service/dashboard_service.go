package service

import (
	"context"
	"fmt"
	"time"

	"watertracker/internal/engine"
	"watertracker/internal/model"
	"watertracker/internal/repository"

	"github.com/shopspring/decimal"
)

// Load-size buckets for the normal-water location breakdown. Locations served
// by ~12000L tankers report as 12KL, ~5000-6000L tankers as 6KL.
const (
	loadBucket12KLThreshold = 10000
	loadBucket6KLThreshold  = 4000
)

// --- DTOs ---

type WaterTypeTotals struct {
	VolumeKL string `json:"volume_kl"`
	Cost     string `json:"cost"`
}

type LocationBreakdownRow struct {
	Location    string `json:"location"`
	VolumeKL    string `json:"volume_kl"`
	Cost        string `json:"cost"`
	LoadCount   int    `json:"load_count"`
	AvgLoadSize string `json:"avg_load_size"`
	LoadBucket  string `json:"load_bucket"` // 12KL, 6KL or Other
}

type DashboardStats struct {
	Month             string                     `json:"month"`
	TotalVolumeKL     string                     `json:"total_volume_kl"`
	TotalCost         string                     `json:"total_cost"`
	Breakdown         map[string]WaterTypeTotals `json:"breakdown"` // Corporation, Drinking, Normal
	LocationBreakdown []LocationBreakdownRow     `json:"location_breakdown"`
	DailyMatrix       MatrixResponse             `json:"daily_matrix"`
	RecentActivity    []model.WaterEntry         `json:"recent_activity"`
}

// MatrixResponse is the JSON shape of an engine pivot matrix.
type MatrixResponse struct {
	Periods      []string                  `json:"periods"`
	Rows         []MatrixRowResponse       `json:"rows"`
	ColumnTotals map[string]TotalsResponse `json:"column_totals"`
	GrandTotal   TotalsResponse            `json:"grand_total"`
}

type MatrixRowResponse struct {
	Location string                  `json:"location"`
	Cells    map[string]CellResponse `json:"cells"`
	Total    TotalsResponse          `json:"total"`
}

type CellResponse struct {
	VolumeKL string   `json:"volume_kl"`
	Cost     string   `json:"cost"`
	Comments []string `json:"comments,omitempty"`
}

type TotalsResponse struct {
	VolumeKL string `json:"volume_kl"`
	Cost     string `json:"cost"`
}

// DashboardService aggregates the month's purchases into the dashboard
// payloads. All pivoting is the engine's; this service only fetches and maps.
type DashboardService interface {
	Stats(ctx context.Context, month string) (*DashboardStats, error)
	MultiMonthStats(ctx context.Context, months int) (*MatrixResponse, error)
}

type dashboardService struct {
	entryRepo repository.EntryRepository
}

func NewDashboardService(entryRepo repository.EntryRepository) DashboardService {
	return &dashboardService{entryRepo: entryRepo}
}

func (s *dashboardService) Stats(ctx context.Context, month string) (*DashboardStats, error) {
	now := time.Now()
	year, m := now.Year(), now.Month()
	if month != "" {
		parsed, err := time.Parse("2006-01", month)
		if err != nil {
			return nil, fmt.Errorf("invalid month %q: expected YYYY-MM", month)
		}
		year, m = parsed.Year(), parsed.Month()
	}

	start := time.Date(year, m, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	entries, err := s.entryRepo.ListAll(ctx, repository.EntryFilter{StartDate: &start, EndDate: &end})
	if err != nil {
		return nil, err
	}

	totalVolume := decimal.Zero
	totalCost := decimal.Zero
	breakdown := map[string]engine.Totals{
		"Corporation": {},
		"Drinking":    {},
		"Normal":      {},
	}

	type locAgg struct {
		volume decimal.Decimal
		cost   decimal.Decimal
		loads  int
	}
	locations := make(map[string]*locAgg)

	var pivotEntries []engine.PivotEntry
	for _, e := range entries {
		volumeKL := e.TotalQuantityLiters.Div(decimal.NewFromInt(1000))
		totalVolume = totalVolume.Add(volumeKL)
		totalCost = totalCost.Add(e.TotalCost)

		key := breakdownKey(e)
		if key != "" {
			t := breakdown[key]
			breakdown[key] = engine.Totals{VolumeKL: t.VolumeKL.Add(volumeKL), Cost: t.Cost.Add(e.TotalCost)}
		}

		if key != "Normal" {
			continue
		}

		locName := "Unassigned"
		if e.UnloadingLocation != nil {
			locName = e.UnloadingLocation.LocationName
		}

		agg := locations[locName]
		if agg == nil {
			agg = &locAgg{}
			locations[locName] = agg
		}
		agg.volume = agg.volume.Add(e.TotalQuantityLiters)
		agg.cost = agg.cost.Add(e.TotalCost)
		if e.LoadCount != nil {
			agg.loads += *e.LoadCount
		} else {
			agg.loads++
		}

		pivotEntries = append(pivotEntries, pivotEntry(e, locName, volumeKL))
	}

	matrix := engine.BuildMatrix(pivotEntries, engine.PeriodDaily, engine.DailyPeriods(year, m))

	locationRows := make([]LocationBreakdownRow, 0, len(locations))
	for _, row := range matrix.Rows {
		agg := locations[row.Location]
		if agg == nil {
			continue
		}
		avgLoad := decimal.Zero
		if agg.loads > 0 {
			avgLoad = agg.volume.Div(decimal.NewFromInt(int64(agg.loads)))
		}
		locationRows = append(locationRows, LocationBreakdownRow{
			Location:    row.Location,
			VolumeKL:    agg.volume.Div(decimal.NewFromInt(1000)).StringFixed(2),
			Cost:        engine.RoundCurrency(agg.cost).StringFixed(2),
			LoadCount:   agg.loads,
			AvgLoadSize: avgLoad.StringFixed(0),
			LoadBucket:  loadBucket(avgLoad),
		})
	}

	recent, err := s.entryRepo.Recent(ctx, 5)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		Month:             start.Format("2006-01"),
		TotalVolumeKL:     totalVolume.StringFixed(2),
		TotalCost:         engine.RoundCurrency(totalCost).StringFixed(2),
		Breakdown:         make(map[string]WaterTypeTotals, len(breakdown)),
		LocationBreakdown: locationRows,
		DailyMatrix:       mapMatrix(matrix),
		RecentActivity:    recent,
	}
	for key, t := range breakdown {
		stats.Breakdown[key] = WaterTypeTotals{
			VolumeKL: t.VolumeKL.StringFixed(2),
			Cost:     engine.RoundCurrency(t.Cost).StringFixed(2),
		}
	}
	return stats, nil
}

func (s *dashboardService) MultiMonthStats(ctx context.Context, months int) (*MatrixResponse, error) {
	if months < 1 {
		months = 3
	}
	now := time.Now()
	periods := engine.MonthlyPeriods(now, months)

	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(months - 1), 0)
	end := time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, time.UTC)
	entries, err := s.entryRepo.ListAll(ctx, repository.EntryFilter{
		StartDate: &start,
		EndDate:   &end,
		WaterType: model.WaterTypeNormal,
	})
	if err != nil {
		return nil, err
	}

	var pivotEntries []engine.PivotEntry
	for _, e := range entries {
		locName := "Unassigned"
		if e.UnloadingLocation != nil {
			locName = e.UnloadingLocation.LocationName
		}
		pivotEntries = append(pivotEntries, pivotEntry(e, locName, e.TotalQuantityLiters.Div(decimal.NewFromInt(1000))))
	}

	matrix := engine.BuildMatrix(pivotEntries, engine.PeriodMonthly, periods)
	resp := mapMatrix(matrix)
	return &resp, nil
}

// breakdownKey classifies an entry for the water-type breakdown. Pipeline
// sources are "Corporation" regardless of stored water type.
func breakdownKey(e model.WaterEntry) string {
	if e.Source != nil && e.Source.SourceType == model.SourceTypePipeline {
		return "Corporation"
	}
	switch e.WaterType {
	case model.WaterTypeDrinking:
		return "Drinking"
	case model.WaterTypeNormal:
		return "Normal"
	}
	return ""
}

func loadBucket(avgLoadLiters decimal.Decimal) string {
	switch {
	case avgLoadLiters.GreaterThanOrEqual(decimal.NewFromInt(loadBucket12KLThreshold)):
		return "12KL"
	case avgLoadLiters.GreaterThanOrEqual(decimal.NewFromInt(loadBucket6KLThreshold)):
		return "6KL"
	}
	return "Other"
}

func pivotEntry(e model.WaterEntry, location string, volumeKL decimal.Decimal) engine.PivotEntry {
	return engine.PivotEntry{
		Location:   location,
		Date:       e.EntryDate,
		VolumeKL:   volumeKL,
		Cost:       e.TotalCost,
		Comment:    e.Comments,
		RecordedAt: e.CreatedAt,
		ID:         e.ID,
	}
}

func mapMatrix(m engine.Matrix) MatrixResponse {
	resp := MatrixResponse{
		Periods:      m.Periods,
		ColumnTotals: make(map[string]TotalsResponse, len(m.ColumnTotals)),
		GrandTotal:   mapTotals(m.GrandTotal),
	}
	for key, t := range m.ColumnTotals {
		resp.ColumnTotals[key] = mapTotals(t)
	}
	for _, row := range m.Rows {
		mapped := MatrixRowResponse{
			Location: row.Location,
			Cells:    make(map[string]CellResponse, len(row.Cells)),
			Total:    mapTotals(row.Total),
		}
		for key, cell := range row.Cells {
			mapped.Cells[key] = CellResponse{
				VolumeKL: cell.VolumeKL.StringFixed(2),
				Cost:     engine.RoundCurrency(cell.Cost).StringFixed(2),
				Comments: cell.Comments,
			}
		}
		resp.Rows = append(resp.Rows, mapped)
	}
	return resp
}

func mapTotals(t engine.Totals) TotalsResponse {
	return TotalsResponse{
		VolumeKL: t.VolumeKL.StringFixed(2),
		Cost:     engine.RoundCurrency(t.Cost).StringFixed(2),
	}
}
