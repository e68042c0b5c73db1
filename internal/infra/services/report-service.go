package services

import (
	"sort"

	"expense-manager/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// unknownCategory buckets records whose category column is absent.
const unknownCategory = "Unknown"

type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}

type PaymentTotal struct {
	Mode  entities.PaymentMode
	Total decimal.Decimal
}

// Summary is the aggregate view of one user's expense records.
type Summary struct {
	Total         decimal.Decimal
	PersonalTotal decimal.Decimal
	SplitTotal    decimal.Decimal
	Count         int
	PaymentTotals []PaymentTotal
	TopCategories []CategoryTotal
	Recent        []entities.ExpenseRecord
}

// BuildSummary computes totals, per-kind and per-payment-mode breakdowns,
// the top three categories by amount, and the recentN most recent records in
// reverse insertion order. It is a pure function over the snapshot: missing
// categories fall into the Unknown bucket and zero amounts just add nothing.
func BuildSummary(records []entities.ExpenseRecord, recentN int) Summary {
	s := Summary{
		Total:         decimal.Zero,
		PersonalTotal: decimal.Zero,
		SplitTotal:    decimal.Zero,
		Count:         len(records),
	}

	paymentTotals := map[entities.PaymentMode]decimal.Decimal{}
	categoryTotals := map[string]decimal.Decimal{}
	var categoryOrder []string

	for _, rec := range records {
		s.Total = s.Total.Add(rec.Amount)

		switch rec.Kind {
		case entities.KindPersonal:
			s.PersonalTotal = s.PersonalTotal.Add(rec.Amount)
		case entities.KindSplit:
			s.SplitTotal = s.SplitTotal.Add(rec.Amount)
		}

		if entities.ValidPaymentMode(rec.PaymentMode) {
			paymentTotals[rec.PaymentMode] = paymentTotals[rec.PaymentMode].Add(rec.Amount)
		}

		cat := rec.Category
		if cat == "" {
			cat = unknownCategory
		}
		if _, seen := categoryTotals[cat]; !seen {
			categoryOrder = append(categoryOrder, cat)
		}
		categoryTotals[cat] = categoryTotals[cat].Add(rec.Amount)
	}

	// Only modes with nonzero totals are reported, in fixed mode order.
	for _, mode := range entities.PaymentModes {
		if total, ok := paymentTotals[mode]; ok && total.GreaterThan(decimal.Zero) {
			s.PaymentTotals = append(s.PaymentTotals, PaymentTotal{Mode: mode, Total: total})
		}
	}

	// Top three by total descending; ties keep first-encountered order.
	tops := make([]CategoryTotal, 0, len(categoryOrder))
	for _, cat := range categoryOrder {
		tops = append(tops, CategoryTotal{Category: cat, Total: categoryTotals[cat]})
	}
	sort.SliceStable(tops, func(i, j int) bool {
		return tops[i].Total.GreaterThan(tops[j].Total)
	})
	if len(tops) > 3 {
		tops = tops[:3]
	}
	s.TopCategories = tops

	s.Recent = RecentRecords(records, recentN)

	return s
}

// RecentRecords returns the last n records in reverse insertion order, the
// chronological proxy when no server-side ordering is guaranteed.
func RecentRecords(records []entities.ExpenseRecord, n int) []entities.ExpenseRecord {
	if n <= 0 || len(records) == 0 {
		return nil
	}
	start := len(records) - n
	if start < 0 {
		start = 0
	}
	tail := records[start:]
	recent := make([]entities.ExpenseRecord, len(tail))
	for i, rec := range tail {
		recent[len(tail)-1-i] = rec
	}
	return recent
}
