package models

import "time"

// RecordKind discriminates the two shapes of FinancialRecord.
type RecordKind string

const (
	KindTrip    RecordKind = "trip"
	KindExpense RecordKind = "expense"
)

// ExpenseCategory enumerates the fixed set of standalone expense categories.
type ExpenseCategory string

const (
	CategoryMaintenance ExpenseCategory = "maintenance"
	CategoryTires       ExpenseCategory = "tires"
	CategoryTaxes       ExpenseCategory = "taxes"
	CategoryFuel        ExpenseCategory = "fuel"
	CategoryOther       ExpenseCategory = "other"
)

// RateConfig holds the per-unit financial rates applied when a trip is
// recorded. Amounts are in Guinean francs, which have no minor unit.
type RateConfig struct {
	FuelPricePerLiter float64 `bson:"fuel_price_per_liter" json:"fuel_price_per_liter"`
	RevenuePerTon     float64 `bson:"revenue_per_ton" json:"revenue_per_ton"`
	LaborCostPerTon   float64 `bson:"labor_cost_per_ton" json:"labor_cost_per_ton"`
}

// TripInput is the raw user entry for a cargo delivery.
type TripInput struct {
	TruckID          string  `json:"truck_id"`
	Destination      string  `json:"destination"`
	Date             string  `json:"date"` // 2006-01-02
	BagCount         int     `json:"bag_count"`
	FuelLiters       float64 `json:"fuel_liters"`
	OtherCost        float64 `json:"other_cost"`
	OtherDescription string  `json:"other_description"`
}

// ExpenseInput is the raw user entry for a standalone cost.
type ExpenseInput struct {
	TruckID     string  `json:"truck_id"`
	Date        string  `json:"date"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
}

// TripDetails carries the fields only a trip record has. AppliedRates is the
// RateConfig snapshot taken at creation time; it is never re-derived.
type TripDetails struct {
	Destination      string     `bson:"destination" json:"destination"`
	BagCount         int        `bson:"bag_count" json:"bag_count"`
	WeightTons       float64    `bson:"weight_tons" json:"weight_tons"`
	Revenue          float64    `bson:"revenue" json:"revenue"`
	LaborCost        float64    `bson:"labor_cost" json:"labor_cost"`
	FuelLiters       float64    `bson:"fuel_liters" json:"fuel_liters"`
	FuelCost         float64    `bson:"fuel_cost" json:"fuel_cost"`
	OtherCost        float64    `bson:"other_cost" json:"other_cost"`
	OtherDescription string     `bson:"other_description,omitempty" json:"other_description,omitempty"`
	AppliedRates     RateConfig `bson:"applied_rates" json:"applied_rates"`
}

// ExpenseDetails carries the fields only an expense record has.
type ExpenseDetails struct {
	Category    ExpenseCategory `bson:"category" json:"category"`
	Amount      float64         `bson:"amount" json:"amount"`
	Description string          `bson:"description,omitempty" json:"description,omitempty"`
}

// FinancialRecord is the single entity produced by the normalizer and stored
// in MongoDB. Exactly one of Trip or Expense is set, matching Kind. Records
// are immutable once created; they are deleted wholesale or left untouched.
type FinancialRecord struct {
	ID            string          `bson:"_id,omitempty" json:"id"`
	OwnerID       string          `bson:"owner_id" json:"owner_id"`
	Kind          RecordKind      `bson:"kind" json:"kind"`
	TruckID       string          `bson:"truck_id" json:"truck_id"`
	Date          time.Time       `bson:"date" json:"date"`
	Timestamp     int64           `bson:"timestamp" json:"timestamp"`
	TotalExpenses float64         `bson:"total_expenses" json:"total_expenses"`
	NetProfit     float64         `bson:"net_profit" json:"net_profit"`
	Trip          *TripDetails    `bson:"trip,omitempty" json:"trip,omitempty"`
	Expense       *ExpenseDetails `bson:"expense,omitempty" json:"expense,omitempty"`
	CreatedAt     time.Time       `bson:"created_at" json:"created_at"`
}

// Revenue returns the record's revenue; expense records earn nothing.
func (r FinancialRecord) Revenue() float64 {
	if r.Trip != nil {
		return r.Trip.Revenue
	}
	return 0
}

// WeightTons returns the delivered tonnage; zero for expense records.
func (r FinancialRecord) WeightTons() float64 {
	if r.Trip != nil {
		return r.Trip.WeightTons
	}
	return 0
}

// FuelCost returns the trip fuel cost; zero for expense records.
func (r FinancialRecord) FuelCost() float64 {
	if r.Trip != nil {
		return r.Trip.FuelCost
	}
	return 0
}

// LaborCost returns the trip labor cost; zero for expense records.
func (r FinancialRecord) LaborCost() float64 {
	if r.Trip != nil {
		return r.Trip.LaborCost
	}
	return 0
}

// OtherCost returns the trip miscellaneous cost; zero for expense records.
func (r FinancialRecord) OtherCost() float64 {
	if r.Trip != nil {
		return r.Trip.OtherCost
	}
	return 0
}
