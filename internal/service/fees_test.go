package service

import (
	"context"
	"testing"

	"library-fees/internal/domain"
	"library-fees/internal/fees"
	"library-fees/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	monday = domain.NewDate(2024, 1, 1)
	sunday = domain.NewDate(2024, 1, 7)
)

func newFeeService(t *testing.T, loans ...domain.Loan) *FeeService {
	t.Helper()
	engine, err := fees.NewEngine(fees.DefaultPolicy())
	require.NoError(t, err)
	return NewFeeService(newFakeLoans(loans...), engine)
}

func TestQuoteLoan_UsesStoredLoanAndMember(t *testing.T) {
	// arrange
	svc := newFeeService(t, domain.Loan{
		ID:         7,
		Member:     &domain.Member{ID: 1, Name: "Ana Perez", Premium: true},
		DueDate:    monday,
		ReturnDate: monday.AddDays(3),
	})

	// act
	q, err := svc.QuoteLoan(context.Background(), 7, fees.Rules{LoyaltyDiscount: true})

	// assert
	require.NoError(t, err)
	assert.Equal(t, int64(7), q.LoanID)
	assert.Equal(t, 3, q.OverdueDays)
	assert.True(t, q.Fact.LoyaltyMember)
	assert.Equal(t, "240", q.Amount.String())
	assert.Equal(t, 2, q.Breakdown.Len())
}

func TestQuoteLoan_NotFound(t *testing.T) {
	svc := newFeeService(t)

	_, err := svc.QuoteLoan(context.Background(), 404, fees.Rules{})

	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestQuoteLoan_InvalidFact(t *testing.T) {
	svc := newFeeService(t, domain.Loan{ID: 3, ReturnDate: monday})

	_, err := svc.QuoteLoan(context.Background(), 3, fees.Rules{})

	assert.ErrorIs(t, err, fees.ErrInvalidFact)
}

func TestQuoteLoan_OutstandingLoanIsFree(t *testing.T) {
	svc := newFeeService(t, domain.Loan{ID: 4, DueDate: monday})

	q, err := svc.QuoteLoan(context.Background(), 4, fees.Rules{HighDemandSurcharge: true})

	require.NoError(t, err)
	assert.True(t, q.Amount.IsZero())
}

func TestQuote_AdHocFact(t *testing.T) {
	svc := newFeeService(t)

	q, err := svc.Quote(fees.LoanFact{DueDate: monday, ReturnDate: monday.AddDays(3)}, fees.Rules{})

	require.NoError(t, err)
	assert.Equal(t, int64(0), q.LoanID)
	assert.Equal(t, "300", q.Amount.String())
}

func TestDemo_OrderSensitivity(t *testing.T) {
	svc := newFeeService(t)

	cases, err := svc.Demo()

	require.NoError(t, err)
	var amounts []string
	for _, c := range cases {
		amounts = append(amounts, c.Amount.String())
	}
	// no rules, exemption, exemption+surcharge, discount+surcharge, all rules
	assert.Equal(t, []string{"500", "0", "200", "600", "200"}, amounts)
	assert.Equal(t, "all rules", cases[4].Label)
	assert.Equal(t, sunday, cases[0].Fact.DueDate)
}
