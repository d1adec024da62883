package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"library-fees/internal/domain"
	"library-fees/internal/repository"
)

var (
	ErrMemberNotFound     = errors.New("member not found")
	ErrInvalidLoanRequest = errors.New("invalid loan request")
)

type LoanStore interface {
	FindByID(ctx context.Context, id int64) (domain.Loan, error)
	Create(ctx context.Context, l domain.Loan) (int64, error)
	MarkReturned(ctx context.Context, id int64, date domain.Date) error
}

type MemberFinder interface {
	FindByID(ctx context.Context, id int64) (domain.Member, error)
}

type LendRequest struct {
	MemberID     int64
	MaterialID   int64
	MaterialType domain.MaterialType
	Days         int
}

type LoanService struct {
	loans   LoanStore
	members MemberFinder
	today   func() domain.Date
}

func NewLoanService(loans LoanStore, members MemberFinder) *LoanService {
	return &LoanService{
		loans:   loans,
		members: members,
		today:   domain.Today,
	}
}

// Lend opens a loan starting today and due after req.Days days.
func (s *LoanService) Lend(ctx context.Context, req LendRequest) (domain.Loan, error) {
	if req.Days <= 0 {
		return domain.Loan{}, fmt.Errorf("%w: days must be positive", ErrInvalidLoanRequest)
	}
	if !req.MaterialType.Valid() {
		return domain.Loan{}, fmt.Errorf("%w: unknown material type %q", ErrInvalidLoanRequest, req.MaterialType)
	}

	member, err := s.members.FindByID(ctx, req.MemberID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Loan{}, fmt.Errorf("member %d: %w", req.MemberID, ErrMemberNotFound)
		}
		return domain.Loan{}, err
	}

	start := s.today()
	loan := domain.Loan{
		MemberID:     member.ID,
		Member:       &member,
		MaterialID:   req.MaterialID,
		MaterialType: req.MaterialType,
		StartDate:    start,
		DueDate:      start.AddDays(req.Days),
	}

	id, err := s.loans.Create(ctx, loan)
	if err != nil {
		return domain.Loan{}, fmt.Errorf("create loan: %w", err)
	}
	loan.ID = id

	log.Printf("[LOANS] lent %s %d to member %d until %s", loan.MaterialType, loan.MaterialID, member.ID, loan.DueDate)
	return loan, nil
}

// Return records the return date; a zero date means today.
func (s *LoanService) Return(ctx context.Context, loanID int64, date domain.Date) (domain.Loan, error) {
	if date.IsZero() {
		date = s.today()
	}

	if err := s.loans.MarkReturned(ctx, loanID, date); err != nil {
		return domain.Loan{}, fmt.Errorf("return loan %d: %w", loanID, err)
	}

	loan, err := s.loans.FindByID(ctx, loanID)
	if err != nil {
		return domain.Loan{}, fmt.Errorf("reload loan %d: %w", loanID, err)
	}

	log.Printf("[LOANS] loan %d returned on %s", loanID, date)
	return loan, nil
}
