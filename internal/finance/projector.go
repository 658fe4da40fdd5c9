package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/revenue-aggregator/internal/lib/month"
	"github.com/magabrotheeeer/revenue-aggregator/internal/models"
)

// DefaultHorizonMonths — жёсткий потолок проекции. Даже бессрочная
// подписка не проецируется дальше asOf плюс двенадцать месяцев.
const DefaultHorizonMonths = 12

type paymentKey struct {
	subscriptionID uuid.UUID
	year           int
	month          int
}

func indexPayments(payments []models.SubscriptionPayment) map[paymentKey]models.SubscriptionPayment {
	idx := make(map[paymentKey]models.SubscriptionPayment, len(payments))
	for _, p := range payments {
		key := paymentKey{p.SubscriptionID, p.Year, p.Month}
		// На пару (подписка, месяц, год) допустима одна запись,
		// дубликат из хранилища игнорируется
		if _, ok := idx[key]; !ok {
			idx[key] = p
		}
	}
	return idx
}

// ProjectObligations обходит календарные месяцы каждой активной подписки
// от её даты начала до min(end_date, начало месяца asOf + horizonMonths)
// и возвращает обязательства, которые ещё не закрыты: месяцы с платежом
// в статусе pending и месяцы вовсе без записи платежа. Оплаченные и
// пропущенные месяцы не дают ничего.
//
// Подписка с датой начала в будущем проецируется от собственного начала,
// а не от asOf. Прошедшие неоплаченные месяцы считаются так же, как
// будущие: оба вида — «ожидаемые». Результат никогда не записывается
// обратно в хранилище.
func ProjectObligations(subs []models.Subscription, payments []models.SubscriptionPayment, asOf time.Time, horizonMonths int) []models.ProjectedObligation {
	if horizonMonths <= 0 || horizonMonths > DefaultHorizonMonths {
		horizonMonths = DefaultHorizonMonths
	}

	idx := indexPayments(payments)
	horizonLimit := month.Add(asOf, horizonMonths)

	var result []models.ProjectedObligation
	for _, sub := range subs {
		if !sub.IsActive {
			continue
		}
		limit := horizonLimit
		if sub.EndDate != nil && sub.EndDate.Before(limit) {
			limit = *sub.EndDate
		}
		for cursor := month.StartOf(sub.StartDate); cursor.Before(limit); cursor = month.Next(cursor) {
			key := paymentKey{sub.ID, cursor.Year(), int(cursor.Month())}
			p, exists := idx[key]
			if exists && (p.IsSkipped || p.PaymentStatus == models.PaymentStatusPaid) {
				continue
			}
			result = append(result, models.ProjectedObligation{
				SubscriptionID: sub.ID,
				CustomerID:     sub.CustomerID,
				Year:           cursor.Year(),
				Month:          int(cursor.Month()),
				Amount:         sub.MonthlyValue,
				HasRecord:      exists,
			})
		}
	}
	return result
}

// PendingObligationsTotal возвращает сумму спроецированных обязательств.
func PendingObligationsTotal(obligations []models.ProjectedObligation) decimal.Decimal {
	total := decimal.Zero
	for _, o := range obligations {
		total = total.Add(o.Amount)
	}
	return total
}

// ProjectPending — удобная форма: проекция и сразу её итоговая сумма.
func ProjectPending(subs []models.Subscription, payments []models.SubscriptionPayment, asOf time.Time, horizonMonths int) decimal.Decimal {
	return PendingObligationsTotal(ProjectObligations(subs, payments, asOf, horizonMonths))
}
