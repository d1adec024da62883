package service

import (
	"context"
	"testing"

	"library-fees/internal/domain"
	"library-fees/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoanService(loans *fakeLoans) *LoanService {
	svc := NewLoanService(loans, fakeMembers{
		1: {ID: 1, Name: "Ana Perez", Premium: true},
		2: {ID: 2, Name: "Juan Diaz"},
	})
	svc.today = func() domain.Date { return monday }
	return svc
}

func TestLend_SetsDatesFromToday(t *testing.T) {
	// arrange
	loans := newFakeLoans()
	svc := newLoanService(loans)

	// act
	loan, err := svc.Lend(context.Background(), LendRequest{MemberID: 1, MaterialID: 1, MaterialType: domain.MaterialBook, Days: 14})

	// assert
	require.NoError(t, err)
	assert.NotZero(t, loan.ID)
	assert.Equal(t, monday, loan.StartDate)
	assert.Equal(t, monday.AddDays(14), loan.DueDate)
	assert.True(t, loan.ReturnDate.IsZero())
	assert.True(t, loan.LoyaltyMember())

	stored, err := loans.FindByID(context.Background(), loan.ID)
	require.NoError(t, err)
	assert.Equal(t, loan.DueDate, stored.DueDate)
}

func TestLend_Validation(t *testing.T) {
	testCases := []struct {
		name string
		req  LendRequest
		want error
	}{
		{"zero days", LendRequest{MemberID: 1, MaterialType: domain.MaterialBook}, ErrInvalidLoanRequest},
		{"negative days", LendRequest{MemberID: 1, MaterialType: domain.MaterialBook, Days: -1}, ErrInvalidLoanRequest},
		{"unknown type", LendRequest{MemberID: 1, MaterialType: "Disco", Days: 3}, ErrInvalidLoanRequest},
		{"unknown member", LendRequest{MemberID: 9, MaterialType: domain.MaterialVideo, Days: 3}, ErrMemberNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newLoanService(newFakeLoans())

			_, err := svc.Lend(context.Background(), tc.req)

			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestLend_CreateError(t *testing.T) {
	loans := newFakeLoans()
	loans.createErr = errBoom
	svc := newLoanService(loans)

	_, err := svc.Lend(context.Background(), LendRequest{MemberID: 2, MaterialType: domain.MaterialMagazine, Days: 1})

	assert.ErrorIs(t, err, errBoom)
}

func TestReturn_DefaultsToToday(t *testing.T) {
	loans := newFakeLoans(domain.Loan{ID: 5, DueDate: monday.AddDays(-2)})
	svc := newLoanService(loans)

	loan, err := svc.Return(context.Background(), 5, domain.Date{})

	require.NoError(t, err)
	assert.Equal(t, monday, loan.ReturnDate)
}

func TestReturn_ExplicitDate(t *testing.T) {
	loans := newFakeLoans(domain.Loan{ID: 5, DueDate: monday})
	svc := newLoanService(loans)

	loan, err := svc.Return(context.Background(), 5, sunday)

	require.NoError(t, err)
	assert.Equal(t, sunday, loan.ReturnDate)
}

func TestReturn_NotFound(t *testing.T) {
	svc := newLoanService(newFakeLoans())

	_, err := svc.Return(context.Background(), 1, monday)

	assert.ErrorIs(t, err, repository.ErrNotFound)
}
