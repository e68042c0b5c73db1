package entities

import "github.com/shopspring/decimal"

// Step marks which input a user's session is waiting for next.
type Step string

const (
	StepNone        Step = ""
	StepSplitNames  Step = "names"
	StepAmount      Step = "amount"
	StepPaymentMode Step = "payment_mode"
	StepDescription Step = "description"
)

// UserSession is the ephemeral per-user draft accumulated across input
// steps. It lives only in memory and is cleared on commit, commit failure,
// or a return to the main menu.
type UserSession struct {
	Awaiting    Step
	Kind        ExpenseKind
	Category    string
	Amount      decimal.Decimal
	PaymentMode PaymentMode
	Description string
	SplitWith   []string
	SplitType   SplitType
}
