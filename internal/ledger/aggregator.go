package ledger

import (
	"sort"

	"github.com/HaidarCreator/Translog-gn/internal/domain/models"
)

// UnknownDestination groups trips whose destination was left blank.
const UnknownDestination = "Unknown"

// ComputeTotals folds the collection into portfolio-level totals. An empty
// collection yields all zeros; no data yet is a normal steady state.
func ComputeTotals(records []models.FinancialRecord) models.Totals {
	var t models.Totals
	for _, r := range records {
		if r.Kind == models.KindTrip {
			t.TotalTripCount++
		}
		t.TotalTons += r.WeightTons()
		t.TotalRevenue += r.Revenue()
		t.TotalProfit += r.NetProfit
		t.TotalExpenses += r.TotalExpenses
	}
	return t
}

// BuildProfitSeries returns the records as a chronological bar series,
// stable-sorted ascending by date so same-day records keep their original
// relative order. Each trip point carries its profit-to-revenue ratio
// clamped to [0,1] for the stacked profit overlay; expense points and
// zero-revenue trips get 0.
func BuildProfitSeries(records []models.FinancialRecord) []models.ProfitPoint {
	series := make([]models.ProfitPoint, 0, len(records))
	for _, r := range records {
		series = append(series, models.ProfitPoint{
			Date:        r.Date,
			Record:      r,
			ProfitRatio: profitRatio(r),
		})
	}

	sort.SliceStable(series, func(i, j int) bool {
		return series[i].Date.Before(series[j].Date)
	})

	return series
}

func profitRatio(r models.FinancialRecord) float64 {
	if r.Kind != models.KindTrip {
		return 0
	}
	revenue := r.Revenue()
	if revenue == 0 {
		return 0
	}
	ratio := r.NetProfit / revenue
	if ratio < 0 {
		return 0
	}
	if ratio > 1 {
		return 1
	}
	return ratio
}

// ComputeDestinationStats ranks destinations by delivered tonnage,
// descending. Only trips participate; blank destinations fall under the
// "Unknown" label. Grouping is exact string match, case-sensitive: "coyah"
// and "Coyah" are distinct groups on purpose. Equal tonnage keeps
// first-seen order.
func ComputeDestinationStats(records []models.FinancialRecord) []models.DestinationStat {
	index := make(map[string]int)
	stats := make([]models.DestinationStat, 0)

	for _, r := range records {
		if r.Kind != models.KindTrip || r.Trip == nil {
			continue
		}

		name := r.Trip.Destination
		if name == "" {
			name = UnknownDestination
		}

		i, ok := index[name]
		if !ok {
			i = len(stats)
			index[name] = i
			stats = append(stats, models.DestinationStat{Name: name})
		}

		stats[i].TripCount++
		stats[i].TotalTons += r.Trip.WeightTons
		stats[i].TotalRevenue += r.Trip.Revenue
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].TotalTons > stats[j].TotalTons
	})

	return stats
}

// ComputeCostBreakdown buckets every cost into fuel, labor, maintenance and
// other. Trip costs land in their own buckets; expense amounts are routed by
// category: fuel→fuel, maintenance and tires→maintenance, taxes and
// other→other.
func ComputeCostBreakdown(records []models.FinancialRecord) models.CostBreakdown {
	var b models.CostBreakdown
	for _, r := range records {
		b.Fuel += r.FuelCost()
		b.Labor += r.LaborCost()
		b.Other += r.OtherCost()

		if r.Kind == models.KindExpense && r.Expense != nil {
			switch r.Expense.Category {
			case models.CategoryFuel:
				b.Fuel += r.Expense.Amount
			case models.CategoryMaintenance, models.CategoryTires:
				b.Maintenance += r.Expense.Amount
			default:
				b.Other += r.Expense.Amount
			}
		}
	}
	b.Total = b.Fuel + b.Labor + b.Maintenance + b.Other
	return b
}
