package models

import "time"

// Totals is the portfolio-level roll-up over every record.
type Totals struct {
	TotalTripCount int     `json:"total_trip_count"`
	TotalTons      float64 `json:"total_tons"`
	TotalRevenue   float64 `json:"total_revenue"`
	TotalProfit    float64 `json:"total_profit"`
	TotalExpenses  float64 `json:"total_expenses"`
}

// ProfitPoint is one bar of the chronological profit series. ProfitRatio is
// net profit over revenue clamped to [0,1]: a loss-making trip renders a
// zero-height profit overlay rather than a negative bar.
type ProfitPoint struct {
	Date        time.Time       `json:"date"`
	Record      FinancialRecord `json:"record"`
	ProfitRatio float64         `json:"profit_ratio"`
}

// DestinationStat is the per-destination volume ranking entry.
type DestinationStat struct {
	Name         string  `json:"name"`
	TripCount    int     `json:"trip_count"`
	TotalTons    float64 `json:"total_tons"`
	TotalRevenue float64 `json:"total_revenue"`
}

// CostBreakdown buckets every cost into four categories.
type CostBreakdown struct {
	Fuel        float64 `json:"fuel"`
	Labor       float64 `json:"labor"`
	Maintenance float64 `json:"maintenance"`
	Other       float64 `json:"other"`
	Total       float64 `json:"total"`
}

// Share returns v as a fraction of the breakdown total. An all-zero
// breakdown divides by 1 so every share reads as 0 instead of NaN.
func (b CostBreakdown) Share(v float64) float64 {
	total := b.Total
	if total == 0 {
		total = 1
	}
	return v / total
}

// Dashboard bundles the aggregates the summary views render.
type Dashboard struct {
	Totals       Totals            `json:"totals"`
	Series       []ProfitPoint     `json:"series"`
	Destinations []DestinationStat `json:"destinations"`
	Costs        CostBreakdown     `json:"costs"`
}

// DailySnapshot is the aggregated state persisted by the scheduled job.
type DailySnapshot struct {
	OwnerID   string        `bson:"owner_id" json:"owner_id"`
	Date      time.Time     `bson:"date" json:"date"`
	Totals    Totals        `bson:"totals" json:"totals"`
	Costs     CostBreakdown `bson:"costs" json:"costs"`
	CreatedAt time.Time     `bson:"created_at" json:"created_at"`
}
