package fees

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StageBase      = "base"
	StageExemption = "afterExemption"
	StageDiscount  = "afterDiscount"
	StageSurcharge = "final"
)

// Stage is one rule of the pipeline. Apply receives the amount produced by
// the stages before it and returns the new running amount. A stage must not
// fail or panic on a fact it does not apply to; it passes the amount through.
type Stage interface {
	Name() string
	Apply(fact LoanFact, amount decimal.Decimal) decimal.Decimal
}

// StageFunc adapts a plain function to the Stage interface.
type StageFunc struct {
	Label string
	Fn    func(fact LoanFact, amount decimal.Decimal) decimal.Decimal
}

func (s StageFunc) Name() string { return s.Label }

func (s StageFunc) Apply(fact LoanFact, amount decimal.Decimal) decimal.Decimal {
	return s.Fn(fact, amount)
}

// baseStage charges PerDiemRate for every overdue day. It starts the chain
// and ignores the incoming amount.
type baseStage struct {
	rate decimal.Decimal
}

func (baseStage) Name() string { return StageBase }

func (s baseStage) Apply(fact LoanFact, _ decimal.Decimal) decimal.Decimal {
	if !fact.Returned() {
		return decimal.Zero
	}
	return s.rate.Mul(decimal.NewFromInt(int64(fact.OverdueDays())))
}

// holidayExemptionStage forgives everything computed so far when the loan
// fell due on the holiday weekday.
type holidayExemptionStage struct {
	weekday time.Weekday
}

func (holidayExemptionStage) Name() string { return StageExemption }

func (s holidayExemptionStage) Apply(fact LoanFact, amount decimal.Decimal) decimal.Decimal {
	if fact.DueDate.IsZero() || fact.DueDate.Weekday() != s.weekday {
		return amount
	}
	return decimal.Zero
}

// loyaltyDiscountStage takes a fixed fraction off the running amount for
// loyalty members.
type loyaltyDiscountStage struct {
	fraction decimal.Decimal
}

func (loyaltyDiscountStage) Name() string { return StageDiscount }

func (s loyaltyDiscountStage) Apply(fact LoanFact, amount decimal.Decimal) decimal.Decimal {
	if !fact.LoyaltyMember {
		return amount
	}
	return amount.Mul(decimal.NewFromInt(1).Sub(s.fraction))
}

// highDemandSurchargeStage adds a flat amount when the loan is more than
// thresholdDays late. The condition is checked against the fact, not the
// running amount, so a loan zeroed by the holiday exemption still pays the
// surcharge. Downstream reports depend on that output.
type highDemandSurchargeStage struct {
	thresholdDays int
	amount        decimal.Decimal
}

func (highDemandSurchargeStage) Name() string { return StageSurcharge }

func (s highDemandSurchargeStage) Apply(fact LoanFact, amount decimal.Decimal) decimal.Decimal {
	if fact.OverdueDays() <= s.thresholdDays {
		return amount
	}
	return amount.Add(s.amount)
}
