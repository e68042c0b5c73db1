package store

import (
	"strconv"
	"strings"
	"time"

	"expense-manager/internal/domain/entities"
	"expense-manager/internal/domain/interfaces/repository"
	repoconstants "expense-manager/internal/domain/interfaces/repository/constants"

	"github.com/shopspring/decimal"
)

const (
	timestampLayout = "2006-01-02 15:04:05"
	dateLayout      = "2006-01-02"
)

// ExpenseRow lays out a record in the persisted ledger column order.
func ExpenseRow(rec entities.ExpenseRecord) []string {
	return []string{
		rec.TransactionID,
		rec.Timestamp.Format(timestampLayout),
		strconv.FormatInt(rec.UserID, 10),
		orNA(rec.Username),
		orNA(rec.FirstName),
		string(rec.Kind),
		rec.Category,
		rec.Amount.String(),
		string(rec.PaymentMode),
		rec.Description,
		rec.Date,
		rec.Status,
		rec.Notes,
		strings.Join(rec.SplitWith, ", "),
		string(rec.SplitType),
		rec.SplitDetails,
	}
}

// HistoryRow lays out an audit line in the persisted audit-log column order.
func HistoryRow(e entities.ChatHistoryEntry) []string {
	return []string{
		e.Timestamp.Format(timestampLayout),
		strconv.FormatInt(e.UserID, 10),
		orNA(e.Username),
		orNA(e.FirstName),
		e.ActionType,
		e.ActionDetails,
		e.TruncatedText(),
		e.ButtonClicked,
		strconv.FormatInt(e.ChatID, 10),
		strconv.Itoa(e.MessageID),
	}
}

// parseExpenseRow materializes a remote row into a record. Missing or
// malformed optional fields degrade to zero values rather than erroring:
// a bad amount becomes zero, an absent category stays empty.
func parseExpenseRow(row repository.Row) entities.ExpenseRecord {
	rec := entities.ExpenseRecord{
		TransactionID: row[repoconstants.ColTransactionID],
		Username:      row[repoconstants.ColUsername],
		FirstName:     row[repoconstants.ColFirstName],
		Kind:          entities.ExpenseKind(row[repoconstants.ColExpenseType]),
		Category:      row[repoconstants.ColCategory],
		PaymentMode:   entities.PaymentMode(row[repoconstants.ColPaymentMode]),
		Description:   row[repoconstants.ColDescription],
		Date:          row[repoconstants.ColDate],
		Status:        row[repoconstants.ColStatus],
		Notes:         row[repoconstants.ColNotes],
		SplitType:     entities.SplitType(row[repoconstants.ColSplitType]),
		SplitDetails:  row[repoconstants.ColSplitDetails],
	}

	if id, err := strconv.ParseInt(strings.TrimSpace(row[repoconstants.ColUserID]), 10, 64); err == nil {
		rec.UserID = id
	}
	if amt, err := decimal.NewFromString(strings.TrimSpace(row[repoconstants.ColAmount])); err == nil {
		rec.Amount = amt
	} else {
		rec.Amount = decimal.Zero
	}
	if ts, err := time.Parse(timestampLayout, row[repoconstants.ColTimestamp]); err == nil {
		rec.Timestamp = ts
	}
	if names := row[repoconstants.ColSplitWith]; names != "" {
		rec.SplitWith = splitNames(names)
	}

	return rec
}

func parseHistoryRow(row repository.Row) entities.ChatHistoryEntry {
	entry := entities.ChatHistoryEntry{
		Username:      row[repoconstants.ColUsername],
		FirstName:     row[repoconstants.ColFirstName],
		ActionType:    row[repoconstants.ColActionType],
		ActionDetails: row[repoconstants.ColActionDetails],
		MessageText:   row[repoconstants.ColMessageText],
		ButtonClicked: row[repoconstants.ColButtonClicked],
	}

	if id, err := strconv.ParseInt(strings.TrimSpace(row[repoconstants.ColUserID]), 10, 64); err == nil {
		entry.UserID = id
	}
	if id, err := strconv.ParseInt(strings.TrimSpace(row[repoconstants.ColChatID]), 10, 64); err == nil {
		entry.ChatID = id
	}
	if id, err := strconv.Atoi(strings.TrimSpace(row[repoconstants.ColMessageID])); err == nil {
		entry.MessageID = id
	}
	if ts, err := time.Parse(timestampLayout, row[repoconstants.ColTimestamp]); err == nil {
		entry.Timestamp = ts
	}

	return entry
}

func splitNames(joined string) []string {
	parts := strings.Split(joined, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if name := strings.TrimSpace(p); name != "" {
			names = append(names, name)
		}
	}
	return names
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
