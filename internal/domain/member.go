package domain

// Member is a library patron. Premium members are the loyalty members the
// fee discount applies to.
type Member struct {
	ID      int64  `json:"id" db:"id"`
	Name    string `json:"name" db:"name"`
	Premium bool   `json:"premium" db:"premium"`
}
