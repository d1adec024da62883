package rest

import (
	"errors"
	"log"
	"net/http"

	"library-fees/internal/domain"
	"library-fees/internal/fees"
	"library-fees/internal/repository"
	"library-fees/internal/service"
)

type breakdownEntry struct {
	Stage  string  `json:"stage"`
	Amount float64 `json:"amount"`
}

type feeResponse struct {
	LoanID        int64            `json:"loan_id,omitempty"`
	DueDate       domain.Date      `json:"due_date"`
	ReturnDate    domain.Date      `json:"return_date"`
	LoyaltyMember bool             `json:"loyalty_member"`
	OverdueDays   int              `json:"overdue_days"`
	Rules         fees.Rules       `json:"rules"`
	Amount        float64          `json:"amount"`
	Breakdown     []breakdownEntry `json:"breakdown,omitempty"`
}

func toFeeResponse(q service.FeeQuote, withBreakdown bool) feeResponse {
	resp := feeResponse{
		LoanID:        q.LoanID,
		DueDate:       q.Fact.DueDate,
		ReturnDate:    q.Fact.ReturnDate,
		LoyaltyMember: q.Fact.LoyaltyMember,
		OverdueDays:   q.OverdueDays,
		Rules:         q.Rules,
		Amount:        q.Amount.InexactFloat64(),
	}
	if withBreakdown {
		resp.Breakdown = make([]breakdownEntry, 0, q.Breakdown.Len())
		for _, e := range q.Breakdown {
			resp.Breakdown = append(resp.Breakdown, breakdownEntry{Stage: e.Stage, Amount: e.Amount.InexactFloat64()})
		}
	}
	return resp
}

func (h *Handler) loanFee(w http.ResponseWriter, r *http.Request) {
	loanID, err := pathID(r, "loan_id")
	if err != nil {
		badRequest(w, err)
		return
	}

	q := r.URL.Query()
	quote, err := h.fees.QuoteLoan(r.Context(), loanID, RulesFromQuery(q))
	switch {
	case errors.Is(err, repository.ErrNotFound):
		ErrorNotFound(w, "loan not found")
		return
	case errors.Is(err, fees.ErrInvalidFact):
		ErrorUnprocessable(w, err.Error())
		return
	case err != nil:
		log.Printf("[HTTP] loanFee error: %v", err)
		ErrorInternal(w, "failed to compute fee")
		return
	}

	Success(w, "", toFeeResponse(quote, ParseFlag(q.Get("breakdown"))))
}

func (h *Handler) quoteFee(w http.ResponseWriter, r *http.Request) {
	req, err := ValidateQuoteRequest(r)
	if err != nil {
		badRequest(w, err)
		return
	}

	quote, err := h.fees.Quote(req.Fact, req.Rules)
	if errors.Is(err, fees.ErrInvalidFact) {
		ErrorUnprocessable(w, err.Error())
		return
	}
	if err != nil {
		log.Printf("[HTTP] quoteFee error: %v", err)
		ErrorInternal(w, "failed to compute fee")
		return
	}

	Success(w, "", toFeeResponse(quote, true))
}

type demoCaseResponse struct {
	Label string `json:"label"`
	feeResponse
}

func (h *Handler) feeDemo(w http.ResponseWriter, r *http.Request) {
	cases, err := h.fees.Demo()
	if err != nil {
		log.Printf("[HTTP] feeDemo error: %v", err)
		ErrorInternal(w, "failed to compute demo")
		return
	}

	out := make([]demoCaseResponse, 0, len(cases))
	for _, c := range cases {
		out = append(out, demoCaseResponse{Label: c.Label, feeResponse: toFeeResponse(c.FeeQuote, true)})
	}

	Success(w, "stages run in fixed order: base, exemption, discount, surcharge", out)
}
