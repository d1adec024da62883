package domain

type Loan struct {
	ID int64 `json:"id"`

	MemberID int64   `json:"member_id"`
	Member   *Member `json:"member,omitempty"`

	// MaterialID points into the table named by MaterialType.
	MaterialID   int64        `json:"material_id"`
	MaterialType MaterialType `json:"material_type"`

	StartDate  Date `json:"start_date"`
	DueDate    Date `json:"due_date"`
	ReturnDate Date `json:"return_date"`
}

func (l Loan) Returned() bool {
	return !l.ReturnDate.IsZero()
}

func (l Loan) LoyaltyMember() bool {
	return l.Member != nil && l.Member.Premium
}
