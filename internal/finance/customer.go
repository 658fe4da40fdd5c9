package finance

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/revenue-aggregator/internal/models"
)

// BuildCustomerProfile пересекает те же правила агрегации с одним клиентом.
//
// Общая выручка складывается из оплаченных продаж клиента и оплаченных
// платежей по его подпискам за окно — продажи являются отдельным каналом
// выручки и с записями главной книги не дедуплицируются. Средний чек —
// выручка, делённая на количество продаж и платежей; при нуле транзакций
// средний чек равен нулю.
//
// «Чаще всего покупаемое» группируется по сырому заголовку продажи:
// два разных названия одного товара считаются раздельно. Это известное
// ограничение точности, перенесённое осознанно, его нельзя «улучшать»
// без изменения контракта отчётов.
func BuildCustomerProfile(customerID uuid.UUID, entries []models.FinancialEntry, sales []models.Sale, subs []models.Subscription, payments []models.SubscriptionPayment, w models.Window) models.CustomerProfile {
	subIDs := make(map[uuid.UUID]struct{})
	for _, sub := range subs {
		if sub.CustomerID.Valid && sub.CustomerID.UUID == customerID {
			subIDs[sub.ID] = struct{}{}
		}
	}

	var scopedEntries []models.FinancialEntry
	for _, e := range entries {
		if e.CustomerID.Valid && e.CustomerID.UUID == customerID {
			scopedEntries = append(scopedEntries, e)
		}
	}

	var scopedPayments []models.SubscriptionPayment
	for _, p := range payments {
		if _, ok := subIDs[p.SubscriptionID]; ok {
			scopedPayments = append(scopedPayments, p)
		}
	}

	// Множество теней строится по всем платежам: запись клиента могла
	// быть создана как тень платежа до смены владельца подписки
	shadow := BuildShadowSet(payments)
	summary := Aggregate(scopedEntries, scopedPayments, shadow, w)

	revenue := decimal.Zero
	transactions := 0

	byTitle := make(map[string]models.ItemCount)
	for _, sale := range sales {
		if !sale.CustomerID.Valid || sale.CustomerID.UUID != customerID {
			continue
		}
		if sale.PaymentStatus != models.PaymentStatusPaid || sale.PaidAt == nil || !w.Contains(*sale.PaidAt) {
			continue
		}
		revenue = revenue.Add(sale.Amount)
		transactions++

		item := byTitle[sale.Title]
		item.Title = sale.Title
		item.Count++
		item.Total = item.Total.Add(sale.Amount)
		byTitle[sale.Title] = item
	}

	for _, p := range scopedPayments {
		if p.IsSkipped || p.PaymentStatus != models.PaymentStatusPaid {
			continue
		}
		if p.PaidAt == nil || !w.Contains(*p.PaidAt) {
			continue
		}
		revenue = revenue.Add(p.Amount)
		transactions++
	}

	average := decimal.Zero
	if transactions > 0 {
		average = revenue.Div(decimal.NewFromInt(int64(transactions)))
	}

	topItems := make([]models.ItemCount, 0, len(byTitle))
	for _, item := range byTitle {
		topItems = append(topItems, item)
	}
	sort.Slice(topItems, func(i, j int) bool {
		if topItems[i].Count != topItems[j].Count {
			return topItems[i].Count > topItems[j].Count
		}
		return topItems[i].Title < topItems[j].Title
	})

	return models.CustomerProfile{
		CustomerID: customerID,
		Period: &models.PeriodReport{
			StartDate:       w.Start,
			EndDate:         w.End,
			PaidIncome:      summary.PaidIncome,
			PendingIncome:   summary.PendingIncome,
			PaidExpenses:    summary.PaidExpenses,
			PendingExpenses: summary.PendingExpenses,
			Monthly:         summary.Monthly,
			BreakEven:       BreakEven(summary.PaidIncome, summary.PaidExpenses),
		},
		TotalRevenue:            revenue,
		TransactionCount:        transactions,
		AverageTransactionValue: average,
		TopItems:                topItems,
	}
}
