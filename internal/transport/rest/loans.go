package rest

import (
	"errors"
	"log"
	"net/http"

	"library-fees/internal/repository"
	"library-fees/internal/service"
)

func (h *Handler) lend(w http.ResponseWriter, r *http.Request) {
	req, err := ValidateLendRequest(r)
	if err != nil {
		badRequest(w, err)
		return
	}

	loan, err := h.loans.Lend(r.Context(), *req)
	switch {
	case errors.Is(err, service.ErrMemberNotFound):
		ErrorNotFound(w, "member not found")
		return
	case errors.Is(err, service.ErrInvalidLoanRequest):
		ErrorBadRequest(w, err.Error())
		return
	case err != nil:
		log.Printf("[HTTP] lend error: %v", err)
		ErrorInternal(w, "failed to create loan")
		return
	}

	SuccessCreated(w, "loan created", loan)
}

func (h *Handler) returnLoan(w http.ResponseWriter, r *http.Request) {
	loanID, err := pathID(r, "loan_id")
	if err != nil {
		badRequest(w, err)
		return
	}

	date, err := ValidateReturnRequest(r)
	if err != nil {
		badRequest(w, err)
		return
	}

	loan, err := h.loans.Return(r.Context(), loanID, date)
	if errors.Is(err, repository.ErrNotFound) {
		ErrorNotFound(w, "loan not found")
		return
	}
	if err != nil {
		log.Printf("[HTTP] returnLoan error: %v", err)
		ErrorInternal(w, "failed to return loan")
		return
	}

	Success(w, "loan returned", loan)
}
