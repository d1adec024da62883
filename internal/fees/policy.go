package fees

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Rules switches the optional stages on and off. The zero value runs the
// base stage only.
type Rules struct {
	HolidayExemption    bool `json:"holidayExemption"`
	LoyaltyDiscount     bool `json:"loyaltyDiscount"`
	HighDemandSurcharge bool `json:"highDemandSurcharge"`
}

// Enabled counts the optional stages that are switched on.
func (r Rules) Enabled() int {
	n := 0
	for _, on := range []bool{r.HolidayExemption, r.LoyaltyDiscount, r.HighDemandSurcharge} {
		if on {
			n++
		}
	}
	return n
}

// Policy holds the numeric parameters of the rules.
type Policy struct {
	PerDiemRate            decimal.Decimal
	DiscountFraction       decimal.Decimal
	SurchargeAmount        decimal.Decimal
	SurchargeThresholdDays int
	HolidayWeekday         time.Weekday
}

func DefaultPolicy() Policy {
	return Policy{
		PerDiemRate:            decimal.NewFromInt(100),
		DiscountFraction:       decimal.RequireFromString("0.20"),
		SurchargeAmount:        decimal.NewFromInt(200),
		SurchargeThresholdDays: 3,
		HolidayWeekday:         time.Sunday, // ISO day 7
	}
}

func (p Policy) Validate() error {
	var errs []error
	if p.PerDiemRate.IsNegative() {
		errs = append(errs, errors.New("per diem rate must not be negative"))
	}
	if p.DiscountFraction.IsNegative() || p.DiscountFraction.GreaterThan(decimal.NewFromInt(1)) {
		errs = append(errs, errors.New("discount fraction must be between 0 and 1"))
	}
	if p.SurchargeAmount.IsNegative() {
		errs = append(errs, errors.New("surcharge amount must not be negative"))
	}
	if p.SurchargeThresholdDays < 0 {
		errs = append(errs, errors.New("surcharge threshold must not be negative"))
	}
	if p.HolidayWeekday < time.Sunday || p.HolidayWeekday > time.Saturday {
		errs = append(errs, errors.New("holiday weekday out of range"))
	}
	return errors.Join(errs...)
}
