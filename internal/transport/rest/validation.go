package rest

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"library-fees/internal/domain"
	"library-fees/internal/fees"
	"library-fees/internal/service"

	"github.com/go-chi/chi/v5"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ParseFlag accepts 1, true, si and sí in any case. Anything else is false.
func ParseFlag(v string) bool {
	v = strings.TrimSpace(v)
	for _, token := range []string{"1", "true", "si", "sí"} {
		if strings.EqualFold(v, token) {
			return true
		}
	}
	return false
}

func RulesFromQuery(q url.Values) fees.Rules {
	return fees.Rules{
		HolidayExemption:    ParseFlag(q.Get("holidayExemption")),
		LoyaltyDiscount:     ParseFlag(q.Get("loyaltyDiscount")),
		HighDemandSurcharge: ParseFlag(q.Get("highDemandSurcharge")),
	}
}

func pathID(r *http.Request, param string) (int64, error) {
	raw := chi.URLParam(r, param)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, &ValidationError{Field: param, Message: param + " must be a positive integer"}
	}
	return id, nil
}

type QuoteRequest struct {
	Fact  fees.LoanFact
	Rules fees.Rules
}

// flag decodes a rule toggle from a JSON bool, a ParseFlag token or the number 1.
type flag bool

func (f *flag) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	switch t := v.(type) {
	case bool:
		*f = flag(t)
	case string:
		*f = flag(ParseFlag(t))
	case float64:
		*f = t == 1
	default:
		*f = false
	}
	return nil
}

type rawRules struct {
	HolidayExemption    flag `json:"holidayExemption"`
	LoyaltyDiscount     flag `json:"loyaltyDiscount"`
	HighDemandSurcharge flag `json:"highDemandSurcharge"`
}

type rawQuoteRequest struct {
	DueDate       *string  `json:"due_date"`
	ReturnDate    *string  `json:"return_date"`
	LoyaltyMember bool     `json:"loyalty_member"`
	Rules         rawRules `json:"rules"`
}

func ValidateQuoteRequest(r *http.Request) (*QuoteRequest, error) {
	var raw rawQuoteRequest

	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil && err != io.EOF {
		return nil, err
	}

	due, err := toDate(raw.DueDate)
	if err != nil {
		return nil, &ValidationError{Field: "due_date", Message: "due_date must be YYYY-MM-DD or empty"}
	}
	ret, err := toDate(raw.ReturnDate)
	if err != nil {
		return nil, &ValidationError{Field: "return_date", Message: "return_date must be YYYY-MM-DD or empty"}
	}

	return &QuoteRequest{
		Fact: fees.LoanFact{
			DueDate:       due,
			ReturnDate:    ret,
			LoyaltyMember: raw.LoyaltyMember,
		},
		Rules: fees.Rules{
			HolidayExemption:    bool(raw.Rules.HolidayExemption),
			LoyaltyDiscount:     bool(raw.Rules.LoyaltyDiscount),
			HighDemandSurcharge: bool(raw.Rules.HighDemandSurcharge),
		},
	}, nil
}

type rawLendRequest struct {
	MemberID     int64  `json:"member_id"`
	MaterialID   int64  `json:"material_id"`
	MaterialType string `json:"material_type"`
	Days         int    `json:"days"`
}

func ValidateLendRequest(r *http.Request) (*service.LendRequest, error) {
	var raw rawLendRequest

	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &ValidationError{Message: "request body is required"}
		}
		return nil, err
	}

	if raw.MemberID <= 0 {
		return nil, &ValidationError{Field: "member_id", Message: "member_id is required"}
	}
	if raw.MaterialID <= 0 {
		return nil, &ValidationError{Field: "material_id", Message: "material_id is required"}
	}
	materialType := domain.MaterialType(raw.MaterialType)
	if !materialType.Valid() {
		return nil, &ValidationError{Field: "material_type", Message: "material_type must be one of Libro, Revista, Video"}
	}
	if raw.Days <= 0 {
		return nil, &ValidationError{Field: "days", Message: "days must be a positive integer"}
	}

	return &service.LendRequest{
		MemberID:     raw.MemberID,
		MaterialID:   raw.MaterialID,
		MaterialType: materialType,
		Days:         raw.Days,
	}, nil
}

type rawReturnRequest struct {
	ReturnDate *string `json:"return_date"`
}

// ValidateReturnRequest returns the zero date when no return_date is given.
func ValidateReturnRequest(r *http.Request) (domain.Date, error) {
	var raw rawReturnRequest

	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil && err != io.EOF {
		return domain.Date{}, err
	}

	date, err := toDate(raw.ReturnDate)
	if err != nil {
		return domain.Date{}, &ValidationError{Field: "return_date", Message: "return_date must be YYYY-MM-DD or empty"}
	}
	return date, nil
}

func toDate(v *string) (domain.Date, error) {
	if v == nil || *v == "" {
		return domain.Date{}, nil
	}
	return domain.ParseDate(*v)
}

// badRequest writes validation messages as-is and hides decoder errors.
func badRequest(w http.ResponseWriter, err error) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		ErrorBadRequest(w, verr.Error())
		return
	}
	ErrorBadRequest(w, "invalid JSON")
}
