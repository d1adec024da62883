package fees

import "github.com/shopspring/decimal"

// slot is one position of the legacy rule order.
type slot struct {
	enabled func(Rules) bool
	build   func(Policy) Stage
}

// legacyOrder is the only order stages are ever run in. Index 0 is the base
// stage and is always enabled.
var legacyOrder = [...]slot{
	{
		enabled: func(Rules) bool { return true },
		build:   func(p Policy) Stage { return baseStage{rate: p.PerDiemRate} },
	},
	{
		enabled: func(r Rules) bool { return r.HolidayExemption },
		build:   func(p Policy) Stage { return holidayExemptionStage{weekday: p.HolidayWeekday} },
	},
	{
		enabled: func(r Rules) bool { return r.LoyaltyDiscount },
		build:   func(p Policy) Stage { return loyaltyDiscountStage{fraction: p.DiscountFraction} },
	},
	{
		enabled: func(r Rules) bool { return r.HighDemandSurcharge },
		build: func(p Policy) Stage {
			return highDemandSurchargeStage{thresholdDays: p.SurchargeThresholdDays, amount: p.SurchargeAmount}
		},
	},
}

// Builder assembles pipelines for a fixed policy.
type Builder struct {
	policy Policy
}

func NewBuilder(policy Policy) *Builder {
	return &Builder{policy: policy}
}

// Build returns the chain of enabled stages in legacy order.
func (b *Builder) Build(rules Rules) Pipeline {
	stages := make([]Stage, 0, len(legacyOrder))
	for _, s := range legacyOrder {
		if s.enabled(rules) {
			stages = append(stages, s.build(b.policy))
		}
	}
	return Pipeline{stages: stages}
}

// Pipeline is an ordered, immutable chain of stages.
type Pipeline struct {
	stages []Stage
}

// Stages returns a copy of the chain.
func (p Pipeline) Stages() []Stage {
	out := make([]Stage, len(p.stages))
	copy(out, p.stages)
	return out
}

// Run threads the running amount through every stage. When rec is not nil it
// receives the amount after each stage, in chain order.
func (p Pipeline) Run(fact LoanFact, rec Recorder) decimal.Decimal {
	amount := decimal.Zero
	for _, s := range p.stages {
		amount = s.Apply(fact, amount)
		if rec != nil {
			rec.Record(s.Name(), amount)
		}
	}
	return amount
}
