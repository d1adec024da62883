package fees

import "github.com/shopspring/decimal"

// Recorder observes the running amount after each stage.
type Recorder interface {
	Record(stage string, amount decimal.Decimal)
}

type Entry struct {
	Stage  string
	Amount decimal.Decimal
}

// Breakdown is the audit trail of one computation: the running amount after
// every executed stage, in order. Its last entry is the final amount.
type Breakdown []Entry

func (b *Breakdown) Record(stage string, amount decimal.Decimal) {
	*b = append(*b, Entry{Stage: stage, Amount: amount})
}

func (b Breakdown) Len() int {
	return len(b)
}

// Final returns the amount of the last entry, or zero for an empty breakdown.
func (b Breakdown) Final() decimal.Decimal {
	if len(b) == 0 {
		return decimal.Zero
	}
	return b[len(b)-1].Amount
}
