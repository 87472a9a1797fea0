package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"watertracker/internal/engine"
	"watertracker/internal/model"
	"watertracker/internal/repository"

	"github.com/shopspring/decimal"
)

// --- DTOs ---

type MonthlySummary struct {
	Month               string                     `json:"month"`
	Purchases           map[string]WaterTypeTotals `json:"purchases"` // Corporation, Drinking, Normal
	TotalPurchaseKL     string                     `json:"total_purchase_kl"`
	TotalPurchaseCost   string                     `json:"total_purchase_cost"`
	TotalYieldKL        string                     `json:"total_yield_kl"`
	ConsumptionNormalKL string                     `json:"consumption_normal_kl"`
	ConsumptionDrinkKL  string                     `json:"consumption_drinking_kl"`
}

type DetailReport struct {
	Name          string             `json:"name"`
	StartDate     string             `json:"start_date"`
	EndDate       string             `json:"end_date"`
	Entries       []model.WaterEntry `json:"entries"`
	TotalVolumeKL string             `json:"total_volume_kl"`
	TotalCost     string             `json:"total_cost"`
	TotalLoads    int                `json:"total_loads"`
}

// ReportService produces the read-only report payloads: the monthly summary,
// the daily yield and consumption matrices, and per-site / per-vendor detail.
type ReportService interface {
	MonthlySummary(ctx context.Context, month string) (*MonthlySummary, error)
	DailyYield(ctx context.Context, month string) (*MatrixResponse, error)
	DailyNormalConsumption(ctx context.Context, month string) (*MatrixResponse, error)
	SiteDetail(ctx context.Context, locationID uint, startDate, endDate string) (*DetailReport, error)
	VendorDetail(ctx context.Context, vendorID uint, startDate, endDate string) (*DetailReport, error)
}

type reportService struct {
	entryRepo       repository.EntryRepository
	yieldRepo       repository.YieldRepository
	consumptionRepo repository.ConsumptionRepository
	locationRepo    repository.LocationRepository
	sourceRepo      repository.SourceRepository
}

func NewReportService(
	entryRepo repository.EntryRepository,
	yieldRepo repository.YieldRepository,
	consumptionRepo repository.ConsumptionRepository,
	locationRepo repository.LocationRepository,
	sourceRepo repository.SourceRepository,
) ReportService {
	return &reportService{
		entryRepo:       entryRepo,
		yieldRepo:       yieldRepo,
		consumptionRepo: consumptionRepo,
		locationRepo:    locationRepo,
		sourceRepo:      sourceRepo,
	}
}

func monthBounds(month string) (time.Time, time.Time, error) {
	now := time.Now()
	year, m := now.Year(), now.Month()
	if month != "" {
		parsed, err := time.Parse("2006-01", month)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid month %q: expected YYYY-MM", month)
		}
		year, m = parsed.Year(), parsed.Month()
	}
	start := time.Date(year, m, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, -1), nil
}

func (s *reportService) MonthlySummary(ctx context.Context, month string) (*MonthlySummary, error) {
	start, end, err := monthBounds(month)
	if err != nil {
		return nil, err
	}

	entries, err := s.entryRepo.ListAll(ctx, repository.EntryFilter{StartDate: &start, EndDate: &end})
	if err != nil {
		return nil, err
	}

	purchases := map[string]engine.Totals{"Corporation": {}, "Drinking": {}, "Normal": {}}
	totalVolume := decimal.Zero
	totalCost := decimal.Zero
	for _, e := range entries {
		volumeKL := e.TotalQuantityLiters.Div(decimal.NewFromInt(1000))
		totalVolume = totalVolume.Add(volumeKL)
		totalCost = totalCost.Add(e.TotalCost)
		if key := breakdownKey(e); key != "" {
			t := purchases[key]
			purchases[key] = engine.Totals{VolumeKL: t.VolumeKL.Add(volumeKL), Cost: t.Cost.Add(e.TotalCost)}
		}
	}

	yieldEntries, err := s.yieldRepo.ListAllEntries(ctx, repository.ReadingFilter{StartDate: &start, EndDate: &end})
	if err != nil {
		return nil, err
	}
	yieldLiters := 0
	for _, e := range yieldEntries {
		yieldLiters += e.YieldLiters
	}

	normalLiters, err := s.consumptionTotal(ctx, start, end, model.ConsumptionTypeNormal)
	if err != nil {
		return nil, err
	}
	drinkingLiters, err := s.consumptionTotal(ctx, start, end, model.ConsumptionTypeDrinking)
	if err != nil {
		return nil, err
	}

	summary := &MonthlySummary{
		Month:               start.Format("2006-01"),
		Purchases:           make(map[string]WaterTypeTotals, len(purchases)),
		TotalPurchaseKL:     totalVolume.StringFixed(2),
		TotalPurchaseCost:   engine.RoundCurrency(totalCost).StringFixed(2),
		TotalYieldKL:        litersToKL(yieldLiters),
		ConsumptionNormalKL: litersToKL(normalLiters),
		ConsumptionDrinkKL:  litersToKL(drinkingLiters),
	}
	for key, t := range purchases {
		summary.Purchases[key] = WaterTypeTotals{
			VolumeKL: t.VolumeKL.StringFixed(2),
			Cost:     engine.RoundCurrency(t.Cost).StringFixed(2),
		}
	}
	return summary, nil
}

func (s *reportService) consumptionTotal(ctx context.Context, start, end time.Time, consumptionType string) (int, error) {
	entries, err := s.consumptionRepo.ListAllEntries(ctx, repository.ConsumptionFilter{
		ReadingFilter:   repository.ReadingFilter{StartDate: &start, EndDate: &end},
		ConsumptionType: consumptionType,
	})
	if err != nil {
		return 0, err
	}
	total := 0
	for _, e := range entries {
		total += e.ConsumptionLiters
	}
	return total, nil
}

func (s *reportService) DailyYield(ctx context.Context, month string) (*MatrixResponse, error) {
	start, end, err := monthBounds(month)
	if err != nil {
		return nil, err
	}

	entries, err := s.yieldRepo.ListAllEntries(ctx, repository.ReadingFilter{StartDate: &start, EndDate: &end})
	if err != nil {
		return nil, err
	}

	var pivotEntries []engine.PivotEntry
	for _, e := range entries {
		locName := fmt.Sprintf("location %d", e.LocationID)
		if e.Location != nil {
			locName = e.Location.LocationName
		}
		pivotEntries = append(pivotEntries, engine.PivotEntry{
			Location:   locName,
			Date:       e.Date,
			VolumeKL:   decimal.NewFromInt(int64(e.YieldLiters)).Div(decimal.NewFromInt(1000)),
			Comment:    e.Comments,
			RecordedAt: e.CreatedAt,
			ID:         e.ID,
		})
	}

	matrix := engine.BuildMatrix(pivotEntries, engine.PeriodDaily, engine.DailyPeriods(start.Year(), start.Month()))
	resp := mapMatrix(matrix)
	return &resp, nil
}

func (s *reportService) DailyNormalConsumption(ctx context.Context, month string) (*MatrixResponse, error) {
	start, end, err := monthBounds(month)
	if err != nil {
		return nil, err
	}

	entries, err := s.consumptionRepo.ListAllEntries(ctx, repository.ConsumptionFilter{
		ReadingFilter:   repository.ReadingFilter{StartDate: &start, EndDate: &end},
		ConsumptionType: model.ConsumptionTypeNormal,
	})
	if err != nil {
		return nil, err
	}

	var pivotEntries []engine.PivotEntry
	for _, e := range entries {
		locName := fmt.Sprintf("location %d", e.LocationID)
		if e.Location != nil {
			locName = e.Location.LocationName
		}
		pivotEntries = append(pivotEntries, engine.PivotEntry{
			Location:   locName,
			Date:       e.Date,
			VolumeKL:   decimal.NewFromInt(int64(e.ConsumptionLiters)).Div(decimal.NewFromInt(1000)),
			Comment:    e.Comments,
			RecordedAt: e.CreatedAt,
			ID:         e.ID,
		})
	}

	matrix := engine.BuildMatrix(pivotEntries, engine.PeriodDaily, engine.DailyPeriods(start.Year(), start.Month()))
	resp := mapMatrix(matrix)
	return &resp, nil
}

func (s *reportService) SiteDetail(ctx context.Context, locationID uint, startDate, endDate string) (*DetailReport, error) {
	location, err := s.locationRepo.FindByID(ctx, locationID)
	if err != nil {
		return nil, errors.New("location not found")
	}

	filter := repository.EntryFilter{LocationID: &locationID}
	if err := applyDateRange(&filter, startDate, endDate); err != nil {
		return nil, err
	}
	entries, err := s.entryRepo.ListAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return buildDetailReport(location.LocationName, startDate, endDate, entries), nil
}

func (s *reportService) VendorDetail(ctx context.Context, vendorID uint, startDate, endDate string) (*DetailReport, error) {
	vendor, err := s.sourceRepo.FindVendorByID(ctx, vendorID)
	if err != nil {
		return nil, errors.New("vendor not found")
	}

	filter := repository.EntryFilter{SourceID: &vendorID}
	if err := applyDateRange(&filter, startDate, endDate); err != nil {
		return nil, err
	}
	entries, err := s.entryRepo.ListAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return buildDetailReport(vendor.SourceName, startDate, endDate, entries), nil
}

func applyDateRange(filter *repository.EntryFilter, startDate, endDate string) error {
	if startDate != "" {
		start, err := parseDate(startDate)
		if err != nil {
			return err
		}
		filter.StartDate = &start
	}
	if endDate != "" {
		end, err := parseDate(endDate)
		if err != nil {
			return err
		}
		filter.EndDate = &end
	}
	return nil
}

func buildDetailReport(name, startDate, endDate string, entries []model.WaterEntry) *DetailReport {
	totalVolume := decimal.Zero
	totalCost := decimal.Zero
	totalLoads := 0
	for _, e := range entries {
		totalVolume = totalVolume.Add(e.TotalQuantityLiters)
		totalCost = totalCost.Add(e.TotalCost)
		if e.LoadCount != nil {
			totalLoads += *e.LoadCount
		}
	}

	return &DetailReport{
		Name:          name,
		StartDate:     startDate,
		EndDate:       endDate,
		Entries:       entries,
		TotalVolumeKL: totalVolume.Div(decimal.NewFromInt(1000)).StringFixed(2),
		TotalCost:     engine.RoundCurrency(totalCost).StringFixed(2),
		TotalLoads:    totalLoads,
	}
}

func litersToKL(liters int) string {
	return decimal.NewFromInt(int64(liters)).Div(decimal.NewFromInt(1000)).StringFixed(2)
}
