package fees

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type Result struct {
	Amount    decimal.Decimal
	Breakdown Breakdown
}

// Engine computes fees with a fixed policy.
type Engine struct {
	builder *Builder
}

func NewEngine(policy Policy) (*Engine, error) {
	if err := policy.Validate(); err != nil {
		return nil, fmt.Errorf("fee policy: %w", err)
	}
	return &Engine{builder: NewBuilder(policy)}, nil
}

// Compute runs the enabled rules over fact. It fails only with ErrInvalidFact.
func (e *Engine) Compute(fact LoanFact, rules Rules) (Result, error) {
	if err := fact.Validate(); err != nil {
		return Result{}, err
	}

	breakdown := make(Breakdown, 0, 1+rules.Enabled())
	amount := e.builder.Build(rules).Run(fact, &breakdown)

	return Result{Amount: amount, Breakdown: breakdown}, nil
}
