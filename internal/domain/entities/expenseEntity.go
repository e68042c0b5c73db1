package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type ExpenseKind string

const (
	KindPersonal ExpenseKind = "Personal"
	KindSplit    ExpenseKind = "Split"
)

type PaymentMode string

const (
	PayCash   PaymentMode = "Cash"
	PayOnline PaymentMode = "Online"
	PayCard   PaymentMode = "Card"
	PayUpi    PaymentMode = "Upi"
)

// PaymentModes lists the accepted modes in their reporting order.
var PaymentModes = []PaymentMode{PayCash, PayOnline, PayCard, PayUpi}

func ValidPaymentMode(mode PaymentMode) bool {
	for _, m := range PaymentModes {
		if m == mode {
			return true
		}
	}
	return false
}

type SplitType string

const (
	SplitEqual  SplitType = "Equal"
	SplitCustom SplitType = "Custom"
)

const StatusCompleted = "Completed"

// ExpenseRecord is one committed transaction in the ledger. Records are
// append-only: once written they are never mutated or deleted.
type ExpenseRecord struct {
	TransactionID string
	Timestamp     time.Time
	UserID        int64
	Username      string
	FirstName     string
	Kind          ExpenseKind
	Category      string
	Amount        decimal.Decimal
	PaymentMode   PaymentMode
	Description   string
	Date          string
	Status        string
	Notes         string
	SplitWith     []string
	SplitType     SplitType
	SplitDetails  string
}

// ShortID is the human-readable identifier shown to users: the last 8
// characters of the transaction id.
func (r ExpenseRecord) ShortID() string {
	if len(r.TransactionID) <= 8 {
		return r.TransactionID
	}
	return r.TransactionID[len(r.TransactionID)-8:]
}
