package pricing

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Rate schedule. All values are exact decimals; monetary arithmetic must
// never go through binary floats.
var (
	BaseRate   = decimal.RequireFromString("25.00") // £/hr starting rate
	BaseAppFee = decimal.RequireFromString("25.00") // £ base retainer for an app or site
	PerPageFee = decimal.RequireFromString("10.00") // £ maintenance per produced or maintained page
	MaxRate    = decimal.RequireFromString("40.00") // £ cap until manual review

	firstYearIncrease  = decimal.RequireFromString("1.05")
	subsequentIncrease = decimal.RequireFromString("1.10")
)

// StartYear is the year the escalation policy begins.
const StartYear = 2025

// ErrNegativePageCount is returned when a maintenance quote is requested
// for a negative number of pages.
var ErrNegativePageCount = errors.New("pricing: page count cannot be negative")

// quantise rounds to two decimal places, half away from zero. Rates and
// fees are never negative so this matches half-up rounding.
func quantise(v decimal.Decimal) decimal.Decimal {
	return v.Round(2)
}

// CurrentRate returns the hourly development rate at the given reference
// time with annual increases applied.
//
// The first elapsed year applies a single 5% step. From the second year
// onward the rate restarts from a 10% step over the base and compounds 10%
// per additional year, clamped at MaxRate. The year-1/year-2 discontinuity
// is part of the published schedule and is intentional.
func CurrentRate(ref time.Time) decimal.Decimal {
	yearsElapsed := ref.Year() - StartYear
	if yearsElapsed < 0 {
		yearsElapsed = 0
	}

	if yearsElapsed == 0 {
		return quantise(BaseRate)
	}
	if yearsElapsed == 1 {
		return quantise(BaseRate.Mul(firstYearIncrease))
	}

	rate := BaseRate.Mul(subsequentIncrease)
	remainingYears := yearsElapsed - 1
	for i := 1; i < remainingYears; i++ {
		rate = rate.Mul(subsequentIncrease)
		if rate.GreaterThanOrEqual(MaxRate) {
			return quantise(MaxRate)
		}
	}

	if rate.GreaterThan(MaxRate) {
		return quantise(MaxRate)
	}
	return quantise(rate)
}

// MaintenanceCost returns the flat maintenance fee for a site of the given
// page count: the base app fee plus a per-page fee.
func MaintenanceCost(pageCount int) (decimal.Decimal, error) {
	if pageCount < 0 {
		return decimal.Decimal{}, ErrNegativePageCount
	}
	total := BaseAppFee.Add(PerPageFee.Mul(decimal.NewFromInt(int64(pageCount))))
	return quantise(total), nil
}

// FormatCurrency renders an amount with the pound symbol and exactly two
// fractional digits.
func FormatCurrency(v decimal.Decimal) string {
	return "£" + quantise(v).StringFixed(2)
}

// Summary describes the current pricing model for display.
type Summary struct {
	CurrentRate     string `json:"current_rate"`
	MaintenanceCost string `json:"maintenance_cost"`
	Pages           int    `json:"pages"`
	BaseAppFee      string `json:"base_app_fee"`
	PerPageFee      string `json:"per_page_fee"`
	AnnualIncrease  string `json:"annual_increase"`
}

// Summarise returns a human-readable summary of the pricing model for the
// given page count at the given reference time.
func Summarise(ref time.Time, pageCount int) (Summary, error) {
	maintenance, err := MaintenanceCost(pageCount)
	if err != nil {
		return Summary{}, err
	}
	return Summary{
		CurrentRate:     FormatCurrency(CurrentRate(ref)) + "/hour",
		MaintenanceCost: FormatCurrency(maintenance) + " total",
		Pages:           pageCount,
		BaseAppFee:      FormatCurrency(BaseAppFee),
		PerPageFee:      FormatCurrency(PerPageFee) + "/page",
		AnnualIncrease:  "+5% after year 1, +10% compounded thereafter (capped at £40/hr)",
	}, nil
}
