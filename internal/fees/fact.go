package fees

import (
	"errors"
	"fmt"

	"library-fees/internal/domain"
)

// ErrInvalidFact is returned when a fact cannot be evaluated, e.g. a loan that
// was returned but has no due date.
var ErrInvalidFact = errors.New("invalid loan fact")

// LoanFact is the read-only view of a loan the engine works on.
// A zero ReturnDate means the loan has not been returned yet.
type LoanFact struct {
	DueDate       domain.Date
	ReturnDate    domain.Date
	LoyaltyMember bool
}

// FactFromLoan builds the engine input from a stored loan.
func FactFromLoan(l domain.Loan) LoanFact {
	return LoanFact{
		DueDate:       l.DueDate,
		ReturnDate:    l.ReturnDate,
		LoyaltyMember: l.LoyaltyMember(),
	}
}

func (f LoanFact) Validate() error {
	if !f.ReturnDate.IsZero() && f.DueDate.IsZero() {
		return fmt.Errorf("%w: returned on %s without a due date", ErrInvalidFact, f.ReturnDate)
	}
	return nil
}

func (f LoanFact) Returned() bool {
	return !f.ReturnDate.IsZero()
}

// OverdueDays is max(0, return - due) in whole days. It is 0 for loans that
// are not returned or have no due date.
func (f LoanFact) OverdueDays() int {
	if !f.Returned() || f.DueDate.IsZero() {
		return 0
	}
	days := f.DueDate.DaysUntil(f.ReturnDate)
	if days < 0 {
		return 0
	}
	return days
}
