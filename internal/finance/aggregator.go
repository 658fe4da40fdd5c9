package finance

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/revenue-aggregator/internal/lib/month"
	"github.com/magabrotheeeer/revenue-aggregator/internal/models"
)

// Summary — итог агрегации за период: оплаченные и ожидаемые суммы по
// доходам и расходам плюс помесячный ряд корзин.
type Summary struct {
	PaidIncome      decimal.Decimal
	PendingIncome   decimal.Decimal
	PaidExpenses    decimal.Decimal
	PendingExpenses decimal.Decimal
	Monthly         []models.MonthBucket
}

// Aggregate раскладывает записи главной книги и платежи подписок по
// календарным месяцам окна и считает итоги периода.
//
// Правила:
//   - оплаченный доход = записи income со статусом paid, id вне shadow,
//     по дате paid_at; запись без paid_at не попадает ни в одну корзину,
//     даже если помечена оплаченной — это качество данных, не ошибка;
//   - ожидаемый доход = remaining_amount ?? amount записей pending/partial,
//     id вне shadow, без фильтра по датам (задолженность на текущий момент);
//   - оплаченный доход подписок = суммы платежей со статусом paid и paid_at
//     внутри окна; вместе с исключением теней это ровно дополняющие друг
//     друга половины, доход не считается ни дважды, ни ноль раз;
//   - расходы аналогично по записям expense.
//
// Помесячная корзина охватывает пересечение месяца с окном, поэтому сумма
// корзин по Income/Expenses совпадает с итогами периода.
func Aggregate(entries []models.FinancialEntry, payments []models.SubscriptionPayment, shadow ShadowSet, w models.Window) Summary {
	var s Summary
	s.PaidIncome = decimal.Zero
	s.PendingIncome = decimal.Zero
	s.PaidExpenses = decimal.Zero
	s.PendingExpenses = decimal.Zero

	if w.End.Before(w.Start) {
		return s
	}

	for _, e := range entries {
		switch e.PaymentStatus {
		case models.PaymentStatusPaid:
			if e.PaidAt == nil || !w.Contains(*e.PaidAt) {
				continue
			}
			if e.Type == models.EntryTypeIncome {
				if !shadow.Contains(e.ID) {
					s.PaidIncome = s.PaidIncome.Add(e.Amount)
				}
			} else {
				s.PaidExpenses = s.PaidExpenses.Add(e.Amount)
			}
		case models.PaymentStatusPending, models.PaymentStatusPartial:
			if e.Type == models.EntryTypeIncome {
				if !shadow.Contains(e.ID) {
					s.PendingIncome = s.PendingIncome.Add(e.Outstanding())
				}
			} else {
				s.PendingExpenses = s.PendingExpenses.Add(e.Outstanding())
			}
		}
	}

	for _, p := range payments {
		if p.IsSkipped || p.PaymentStatus != models.PaymentStatusPaid {
			continue
		}
		if p.PaidAt == nil || !w.Contains(*p.PaidAt) {
			continue
		}
		s.PaidIncome = s.PaidIncome.Add(p.Amount)
	}

	for cursor := month.StartOf(w.Start); !cursor.After(w.End); cursor = month.Next(cursor) {
		s.Monthly = append(s.Monthly, monthBucket(entries, payments, shadow, w, cursor))
	}

	return s
}

func monthBucket(entries []models.FinancialEntry, payments []models.SubscriptionPayment, shadow ShadowSet, w models.Window, cursor time.Time) models.MonthBucket {
	income := decimal.Zero
	expenses := decimal.Zero

	inBucket := func(paidAt *time.Time) bool {
		return paidAt != nil && month.Same(*paidAt, cursor) && w.Contains(*paidAt)
	}

	for _, e := range entries {
		if e.PaymentStatus != models.PaymentStatusPaid || !inBucket(e.PaidAt) {
			continue
		}
		if e.Type == models.EntryTypeIncome {
			if !shadow.Contains(e.ID) {
				income = income.Add(e.Amount)
			}
		} else {
			expenses = expenses.Add(e.Amount)
		}
	}

	for _, p := range payments {
		if p.IsSkipped || p.PaymentStatus != models.PaymentStatusPaid {
			continue
		}
		if inBucket(p.PaidAt) {
			income = income.Add(p.Amount)
		}
	}

	return models.MonthBucket{
		Month:    month.Key(cursor),
		Income:   income,
		Expenses: expenses,
		Progress: progress(income, expenses),
		Surplus:  income.Sub(expenses),
	}
}
