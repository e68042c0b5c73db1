package services

import (
	"fmt"
	"strings"

	"expense-manager/internal/domain/entities"
)

func greetingText(firstName string) string {
	return fmt.Sprintf(
		"👋 Hi *%s*! I'm *ExpenseManager Bot*.\n\n"+
			"Track your expenses with full history:\n"+
			"• Personal & Split expenses\n"+
			"• Complete transaction history\n"+
			"• Full chat interaction log\n"+
			"• Spending analytics\n\n"+
			"Choose an option below:", firstName)
}

func helpText() string {
	return "ℹ️ *How to use ExpenseManager Bot*\n\n" +
		"*Adding Expenses:*\n" +
		"1. Choose Personal or Split\n" +
		"2. Select a category\n" +
		"3. For Split: Choose split type & enter names\n" +
		"4. Enter the amount\n" +
		"5. Select payment mode\n" +
		"6. Optionally add description\n\n" +
		"*Split Options:*\n" +
		"• Equal - Split amount equally\n" +
		"• Custom - Specify individual amounts\n\n" +
		"*Viewing Data:*\n" +
		"• 📊 View Expenses - Summary & analytics\n" +
		"• 📜 Transaction History - All transactions\n" +
		"• 💬 Chat History - Your interaction log\n\n" +
		"All data is securely stored in the expense sheet."
}

func summaryText(s Summary) string {
	var b strings.Builder
	b.WriteString("📊 *Your Expense Summary*\n\n")
	fmt.Fprintf(&b, "💰 Total Spent: ₹%s\n", s.Total.StringFixed(2))
	fmt.Fprintf(&b, "👤 Personal: ₹%s\n", s.PersonalTotal.StringFixed(2))
	fmt.Fprintf(&b, "👥 Split: ₹%s\n", s.SplitTotal.StringFixed(2))
	fmt.Fprintf(&b, "📝 Total Transactions: %d\n\n", s.Count)

	if len(s.PaymentTotals) > 0 {
		b.WriteString("*Payment Modes:*\n")
		for _, pt := range s.PaymentTotals {
			fmt.Fprintf(&b, "%s %s: ₹%s\n", paymentIcon(pt.Mode), pt.Mode, pt.Total.StringFixed(2))
		}
		b.WriteString("\n")
	}

	if len(s.TopCategories) > 0 {
		b.WriteString("*Top Categories:*\n")
		for _, ct := range s.TopCategories {
			fmt.Fprintf(&b, "• %s: ₹%s\n", ct.Category, ct.Total.StringFixed(2))
		}
		b.WriteString("\n")
	}

	b.WriteString("*Recent Transactions:*\n")
	for _, rec := range s.Recent {
		desc := ""
		if rec.Description != "" {
			desc = " - " + rec.Description
		}
		cat := rec.Category
		if cat == "" {
			cat = unknownCategory
		}
		fmt.Fprintf(&b, "%s ₹%s - %s (%s)%s\n", paymentIcon(rec.PaymentMode), rec.Amount.String(), cat, rec.Date, desc)
	}
	return b.String()
}

func transactionHistoryText(records []entities.ExpenseRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📜 *Transaction History* (Last %d)\n\n", len(records))
	for _, rec := range records {
		cat := rec.Category
		if cat == "" {
			cat = unknownCategory
		}
		fmt.Fprintf(&b, "*%s* - ₹%s %s\n", cat, rec.Amount.String(), paymentIcon(rec.PaymentMode))
		fmt.Fprintf(&b, "   %s | %s | %s\n", rec.Kind, rec.PaymentMode, rec.Timestamp.Format("2006-01-02 15:04:05"))
		fmt.Fprintf(&b, "   TXN: `%s`", rec.ShortID())
		if rec.Description != "" {
			fmt.Fprintf(&b, "\n   Note: %s", rec.Description)
		}
		if len(rec.SplitWith) > 0 {
			fmt.Fprintf(&b, "\n   Split: %s with %s", rec.SplitType, strings.Join(rec.SplitWith, ", "))
		}
		b.WriteString("\n\n")
	}
	return b.String()
}

func chatHistoryText(entries []entities.ChatHistoryEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "💬 *Your Chat History* (Last %d interactions)\n\n", len(entries))
	for _, e := range entries {
		icon := "🟡"
		switch e.ActionType {
		case entities.ActionCommand:
			icon = "🔵"
		case entities.ActionButtonClick:
			icon = "🟢"
		}
		fmt.Fprintf(&b, "%s *%s*: %s\n   %s\n\n", icon, e.ActionType, e.ActionDetails, e.Timestamp.Format("2006-01-02 15:04:05"))
	}
	return b.String()
}

func confirmationText(rec entities.ExpenseRecord, txnID string) string {
	shortID := txnID
	if len(shortID) > 8 {
		shortID = shortID[len(shortID)-8:]
	}

	splitInfo := ""
	if len(rec.SplitWith) > 0 {
		splitInfo = fmt.Sprintf("\n👥 Split with: %s", strings.Join(rec.SplitWith, ", "))
	}
	descLine := ""
	if rec.Description != "" {
		descLine = fmt.Sprintf("\n📝 Description: %s", rec.Description)
	}

	return fmt.Sprintf(
		"🎉 *Congratulations!*\n\n"+
			"✅ *Transaction Successfully Recorded!*\n\n"+
			"🏷️ Category: %s\n"+
			"💰 Amount: ₹%s\n"+
			"%s Payment: %s%s\n"+
			"🔖 Transaction ID: `%s`%s",
		rec.Category, rec.Amount.String(), paymentIcon(rec.PaymentMode), rec.PaymentMode, descLine, shortID, splitInfo)
}

func debugText(userID int64, username string, records []entities.ExpenseRecord) string {
	var b strings.Builder
	b.WriteString("🔍 *Debug Info*\n\n")
	fmt.Fprintf(&b, "Your User ID: `%d`\n", userID)
	if username == "" {
		username = "None"
	}
	fmt.Fprintf(&b, "Your Username: %s\n\n", username)
	fmt.Fprintf(&b, "Your records: %d\n\n", len(records))

	if len(records) > 0 {
		latest := records[len(records)-1]
		cat := latest.Category
		if cat == "" {
			cat = unknownCategory
		}
		b.WriteString("*Your Latest Record:*\n")
		fmt.Fprintf(&b, "Category: %s\n", cat)
		fmt.Fprintf(&b, "Amount: ₹%s\n", latest.Amount.String())
		fmt.Fprintf(&b, "Date: %s\n", latest.Date)
	} else {
		b.WriteString("⚠️ No records found for your User ID\n")
	}
	return b.String()
}
