package finance

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/revenue-aggregator/internal/models"
)

func activeSub(start time.Time, monthly string) models.Subscription {
	return models.Subscription{
		ID:           uuid.New(),
		MonthlyValue: decimal.RequireFromString(monthly),
		StartDate:    start,
		IsActive:     true,
	}
}

func TestProjectObligations_Scenario(t *testing.T) {
	// Подписка 200/мес с 2024-01-01 без записей платежей, asOf 2024-03-15:
	// проекция покрывает январь 2024 — февраль 2025, 14 месяцев,
	// прошедшие неоплаченные месяцы считаются наравне с будущими
	sub := activeSub(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), "200")
	asOf := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	got := ProjectObligations([]models.Subscription{sub}, nil, asOf, 12)

	require.Len(t, got, 14)
	assert.Equal(t, 2024, got[0].Year)
	assert.Equal(t, 1, got[0].Month)
	last := got[len(got)-1]
	assert.Equal(t, 2025, last.Year)
	assert.Equal(t, 2, last.Month)
	for _, o := range got {
		assert.True(t, o.Amount.Equal(decimal.RequireFromString("200")))
		assert.False(t, o.HasRecord)
	}

	total := PendingObligationsTotal(got)
	assert.True(t, total.Equal(decimal.RequireFromString("2800")), "total = %s", total)
}

func TestProjectObligations_HorizonBound(t *testing.T) {
	// Бессрочная подписка никогда не проецируется дальше asOf + 12 месяцев
	sub := activeSub(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), "100")
	asOf := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	got := ProjectObligations([]models.Subscription{sub}, nil, asOf, 12)

	require.NotEmpty(t, got)
	bound := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	for _, o := range got {
		monthStart := time.Date(o.Year, time.Month(o.Month), 1, 0, 0, 0, 0, time.UTC)
		assert.True(t, monthStart.Before(bound), "obligation %04d-%02d beyond horizon", o.Year, o.Month)
	}
}

func TestProjectObligations_HorizonClamp(t *testing.T) {
	sub := activeSub(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), "100")
	asOf := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	// Запрошенный горизонт больше потолка усечётся до 12
	wide := ProjectObligations([]models.Subscription{sub}, nil, asOf, 24)
	capped := ProjectObligations([]models.Subscription{sub}, nil, asOf, 12)
	assert.Equal(t, len(capped), len(wide))
}

func TestProjectObligations_EndedAndInactive(t *testing.T) {
	asOf := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	ended := activeSub(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), "100")
	endDate := time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC)
	ended.EndDate = &endDate

	inactive := activeSub(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), "100")
	inactive.IsActive = false

	got := ProjectObligations([]models.Subscription{ended, inactive}, nil, asOf, 12)

	// Закончившаяся подписка даёт только месяцы до end_date,
	// неактивная — ничего
	require.Len(t, got, 3)
	for _, o := range got {
		assert.Equal(t, ended.ID, o.SubscriptionID)
		assert.Equal(t, 2023, o.Year)
	}
}

func TestProjectObligations_EndBeforeAsOfFullyPaid(t *testing.T) {
	sub := activeSub(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), "100")
	endDate := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	sub.EndDate = &endDate

	got := ProjectObligations([]models.Subscription{sub}, nil, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), 12)
	assert.Empty(t, got)
}

func TestProjectObligations_FutureStart(t *testing.T) {
	// Подписка из будущего проецируется от собственного начала, не от asOf
	sub := activeSub(time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC), "300")
	asOf := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	got := ProjectObligations([]models.Subscription{sub}, nil, asOf, 12)

	// Сентябрь 2024 — февраль 2025 включительно
	require.Len(t, got, 6)
	assert.Equal(t, 9, got[0].Month)
	assert.Equal(t, 2024, got[0].Year)
}

func TestProjectObligations_ExistingPayments(t *testing.T) {
	sub := activeSub(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), "200")
	asOf := time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC)
	paidAt := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	payments := []models.SubscriptionPayment{
		// Январь оплачен — не даёт ничего
		{ID: uuid.New(), SubscriptionID: sub.ID, Month: 1, Year: 2024,
			Amount: decimal.RequireFromString("200"), PaymentStatus: models.PaymentStatusPaid, PaidAt: &paidAt},
		// Февраль пропущен — не даёт ничего
		{ID: uuid.New(), SubscriptionID: sub.ID, Month: 2, Year: 2024,
			Amount: decimal.RequireFromString("200"), PaymentStatus: models.PaymentStatusPending, IsSkipped: true},
		// Март ожидает оплаты — виртуальное обязательство на monthly_value
		{ID: uuid.New(), SubscriptionID: sub.ID, Month: 3, Year: 2024,
			Amount: decimal.RequireFromString("180"), PaymentStatus: models.PaymentStatusPending},
	}

	got := ProjectObligations([]models.Subscription{sub}, payments, asOf, 12)

	require.NotEmpty(t, got)
	assert.Equal(t, 3, got[0].Month)
	assert.True(t, got[0].HasRecord)
	// Вклад месяца — стоимость подписки, а не сумма из записи платежа
	assert.True(t, got[0].Amount.Equal(decimal.RequireFromString("200")))

	for _, o := range got[1:] {
		assert.False(t, o.HasRecord)
	}
	// Январь и февраль 2024 отсутствуют; январь и февраль 2025 при этом
	// остаются в горизонте и исключаться не должны
	sawJan2025 := false
	for _, o := range got {
		if o.Year == 2024 {
			assert.NotEqual(t, 1, o.Month)
			assert.NotEqual(t, 2, o.Month)
		}
		if o.Year == 2025 && o.Month == 1 {
			sawJan2025 = true
		}
	}
	assert.True(t, sawJan2025, "january 2025 is inside the horizon")
}

func TestProjectPending_EmptyInput(t *testing.T) {
	total := ProjectPending(nil, nil, time.Now(), 12)
	assert.True(t, total.IsZero())
}
