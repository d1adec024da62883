package service

import (
	"context"
	"fmt"
	"log"

	"library-fees/internal/domain"
	"library-fees/internal/fees"

	"github.com/shopspring/decimal"
)

type LoanFinder interface {
	FindByID(ctx context.Context, id int64) (domain.Loan, error)
}

// FeeQuote is an engine result together with the inputs that produced it.
type FeeQuote struct {
	LoanID      int64
	Fact        fees.LoanFact
	Rules       fees.Rules
	OverdueDays int
	Amount      decimal.Decimal
	Breakdown   fees.Breakdown
}

type FeeService struct {
	loans  LoanFinder
	engine *fees.Engine
}

func NewFeeService(loans LoanFinder, engine *fees.Engine) *FeeService {
	return &FeeService{
		loans:  loans,
		engine: engine,
	}
}

// QuoteLoan prices a stored loan. A missing loan surfaces repository.ErrNotFound.
func (s *FeeService) QuoteLoan(ctx context.Context, loanID int64, rules fees.Rules) (FeeQuote, error) {
	loan, err := s.loans.FindByID(ctx, loanID)
	if err != nil {
		return FeeQuote{}, fmt.Errorf("load loan %d: %w", loanID, err)
	}

	q, err := s.quote(fees.FactFromLoan(loan), rules)
	if err != nil {
		return FeeQuote{}, fmt.Errorf("loan %d: %w", loanID, err)
	}
	q.LoanID = loanID

	log.Printf("[FEES] loan=%d overdue=%d rules=%+v amount=%s", loanID, q.OverdueDays, rules, q.Amount)
	return q, nil
}

// Quote prices an ad-hoc fact that is not stored anywhere.
func (s *FeeService) Quote(fact fees.LoanFact, rules fees.Rules) (FeeQuote, error) {
	q, err := s.quote(fact, rules)
	if err != nil {
		return FeeQuote{}, err
	}

	log.Printf("[FEES] adhoc overdue=%d rules=%+v amount=%s", q.OverdueDays, rules, q.Amount)
	return q, nil
}

func (s *FeeService) quote(fact fees.LoanFact, rules fees.Rules) (FeeQuote, error) {
	res, err := s.engine.Compute(fact, rules)
	if err != nil {
		return FeeQuote{}, err
	}

	return FeeQuote{
		Fact:        fact,
		Rules:       rules,
		OverdueDays: fact.OverdueDays(),
		Amount:      res.Amount,
		Breakdown:   res.Breakdown,
	}, nil
}

// DemoCase is one row of the order-sensitivity demonstration.
type DemoCase struct {
	Label string
	FeeQuote
}

var demoRules = []struct {
	label string
	rules fees.Rules
}{
	{"no rules", fees.Rules{}},
	{"holiday exemption", fees.Rules{HolidayExemption: true}},
	{"holiday exemption + high demand surcharge", fees.Rules{HolidayExemption: true, HighDemandSurcharge: true}},
	{"loyalty discount + high demand surcharge", fees.Rules{LoyaltyDiscount: true, HighDemandSurcharge: true}},
	{"all rules", fees.Rules{HolidayExemption: true, LoyaltyDiscount: true, HighDemandSurcharge: true}},
}

// Demo prices a loyalty member's loan due on a Sunday and returned five days
// late under each rule combination.
func (s *FeeService) Demo() ([]DemoCase, error) {
	due := domain.NewDate(2024, 1, 7)
	fact := fees.LoanFact{DueDate: due, ReturnDate: due.AddDays(5), LoyaltyMember: true}

	out := make([]DemoCase, 0, len(demoRules))
	for _, d := range demoRules {
		q, err := s.quote(fact, d.rules)
		if err != nil {
			return nil, err
		}
		out = append(out, DemoCase{Label: d.label, FeeQuote: q})
	}
	return out, nil
}
