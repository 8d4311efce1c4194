package ledger

import (
	"strings"
	"time"

	"github.com/HaidarCreator/Translog-gn/internal/domain/models"
)

const (
	dateLayout = "2006-01-02"

	// Cement is delivered in fixed 50kg bags.
	tonsPerBag = 0.05
)

// NormalizeTrip turns a raw trip entry plus the rates in force into a
// financial record with every derived monetary field populated:
//
//	weightTons    = bagCount * 0.05
//	revenue       = weightTons * revenuePerTon
//	laborCost     = weightTons * laborCostPerTon
//	fuelCost      = fuelLiters * fuelPricePerLiter
//	totalExpenses = fuelCost + laborCost + otherCost
//	netProfit     = revenue - totalExpenses
//
// The rates are stored verbatim on the record so later rate changes never
// touch historical records. Negative profit is a valid business outcome, not
// an error. The record ID is left empty; the persistence layer assigns it.
func NormalizeTrip(in models.TripInput, rates models.RateConfig) (models.FinancialRecord, error) {
	truckID, err := normalizeTruckID(in.TruckID)
	if err != nil {
		return models.FinancialRecord{}, err
	}

	date, err := parseDate(in.Date)
	if err != nil {
		return models.FinancialRecord{}, err
	}

	if in.BagCount < 1 {
		return models.FinancialRecord{}, invalid("bag_count", "must be at least 1")
	}
	if in.FuelLiters < 0 {
		return models.FinancialRecord{}, invalid("fuel_liters", "must not be negative")
	}
	if in.OtherCost < 0 {
		return models.FinancialRecord{}, invalid("other_cost", "must not be negative")
	}

	weightTons := float64(in.BagCount) * tonsPerBag
	revenue := weightTons * rates.RevenuePerTon
	laborCost := weightTons * rates.LaborCostPerTon
	fuelCost := in.FuelLiters * rates.FuelPricePerLiter
	totalExpenses := fuelCost + laborCost + in.OtherCost

	return models.FinancialRecord{
		Kind:          models.KindTrip,
		TruckID:       truckID,
		Date:          date,
		Timestamp:     date.UnixMilli(),
		TotalExpenses: totalExpenses,
		NetProfit:     revenue - totalExpenses,
		Trip: &models.TripDetails{
			Destination:      in.Destination,
			BagCount:         in.BagCount,
			WeightTons:       weightTons,
			Revenue:          revenue,
			LaborCost:        laborCost,
			FuelLiters:       in.FuelLiters,
			FuelCost:         fuelCost,
			OtherCost:        in.OtherCost,
			OtherDescription: in.OtherDescription,
			AppliedRates:     rates,
		},
	}, nil
}

// NormalizeExpense turns a raw standalone cost entry into a financial
// record: revenue 0, totalExpenses = amount, netProfit = -amount.
func NormalizeExpense(in models.ExpenseInput) (models.FinancialRecord, error) {
	truckID, err := normalizeTruckID(in.TruckID)
	if err != nil {
		return models.FinancialRecord{}, err
	}

	date, err := parseDate(in.Date)
	if err != nil {
		return models.FinancialRecord{}, err
	}

	category, err := ParseCategory(in.Category)
	if err != nil {
		return models.FinancialRecord{}, err
	}

	if in.Amount < 0 {
		return models.FinancialRecord{}, invalid("amount", "must not be negative")
	}

	netProfit := -in.Amount
	if netProfit == 0 {
		netProfit = 0 // avoid -0 from a zero amount
	}

	return models.FinancialRecord{
		Kind:          models.KindExpense,
		TruckID:       truckID,
		Date:          date,
		Timestamp:     date.UnixMilli(),
		TotalExpenses: in.Amount,
		NetProfit:     netProfit,
		Expense: &models.ExpenseDetails{
			Category:    category,
			Amount:      in.Amount,
			Description: in.Description,
		},
	}, nil
}

// ParseCategory maps free-form input onto the fixed category set. Matching is
// case-insensitive; anything outside the set is a ValidationError.
func ParseCategory(value string) (models.ExpenseCategory, error) {
	switch models.ExpenseCategory(strings.ToLower(strings.TrimSpace(value))) {
	case models.CategoryMaintenance:
		return models.CategoryMaintenance, nil
	case models.CategoryTires:
		return models.CategoryTires, nil
	case models.CategoryTaxes:
		return models.CategoryTaxes, nil
	case models.CategoryFuel:
		return models.CategoryFuel, nil
	case models.CategoryOther:
		return models.CategoryOther, nil
	default:
		return "", invalid("category", "must be one of maintenance, tires, taxes, fuel, other")
	}
}

func normalizeTruckID(raw string) (string, error) {
	truckID := strings.ToUpper(strings.TrimSpace(raw))
	if truckID == "" {
		return "", invalid("truck_id", "must not be empty")
	}
	return truckID, nil
}

func parseDate(raw string) (time.Time, error) {
	date, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, invalid("date", "must be a valid date in 2006-01-02 form")
	}
	return date.UTC(), nil
}
