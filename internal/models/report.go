package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MonthBucket — агрегат за один календарный месяц. Чисто вычисляемая
// структура, никогда не сохраняется и пересчитывается при каждом запросе.
//
// Progress — доход в процентах от расходов. При расходах, равных нулю,
// значение равно 200, если есть доход, и 0, если дохода тоже нет.
// Потребители опираются именно на эти значения для отображения шкалы,
// менять соглашение нельзя.
type MonthBucket struct {
	Month    string          `json:"month"` // Формат YYYY-MM
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Progress decimal.Decimal `json:"progress"`
	Surplus  decimal.Decimal `json:"surplus"`
}

// BreakEven — точка безубыточности за период: доход в процентах от
// расходов и профицит (доход минус расход). Формула и граничные случаи
// совпадают с помесячным расчётом в MonthBucket.
type BreakEven struct {
	Progress decimal.Decimal `json:"progress"`
	Surplus  decimal.Decimal `json:"surplus"`
}

// PeriodReport — полный финансовый срез за произвольный период:
// итоги по оплаченным и ожидаемым суммам, помесячный ряд и точка
// безубыточности. Одна и та же структура отдаётся дашборду, экрану
// отчётов и генератору PDF — все трое обязаны видеть одинаковые числа.
type PeriodReport struct {
	StartDate       time.Time       `json:"start_date"`
	EndDate         time.Time       `json:"end_date"`
	PaidIncome      decimal.Decimal `json:"paid_income"`
	PendingIncome   decimal.Decimal `json:"pending_income"`
	PaidExpenses    decimal.Decimal `json:"paid_expenses"`
	PendingExpenses decimal.Decimal `json:"pending_expenses"`
	Monthly         []MonthBucket   `json:"monthly"`
	BreakEven       BreakEven       `json:"break_even"`
}

// ProjectionReport — проекция обязательств по подпискам на горизонт
// вперёд от asOf: список виртуальных обязательств и их общая сумма.
type ProjectionReport struct {
	AsOf          time.Time             `json:"as_of"`
	HorizonMonths int                   `json:"horizon_months"`
	PendingTotal  decimal.Decimal       `json:"pending_total"`
	Obligations   []ProjectedObligation `json:"obligations"`
}

// DashboardSummary — данные для карточек живого дашборда:
// отчёт за текущий месяц плюс сумма ещё не выставленных обязательств.
type DashboardSummary struct {
	AsOf               time.Time       `json:"as_of"`
	Period             *PeriodReport   `json:"period"`
	PendingObligations decimal.Decimal `json:"pending_obligations"`
}

// ExportReport — полезная нагрузка для внешнего генератора PDF.
// Числа формируются тем же движком, что и для дашборда с отчётами.
type ExportReport struct {
	GeneratedAt time.Time         `json:"generated_at"`
	Period      *PeriodReport     `json:"period"`
	Projection  *ProjectionReport `json:"projection"`
}

// ItemCount — позиция в списке «чаще всего покупаемого» клиентом.
// Группировка идёт по сырому заголовку продажи без нормализации:
// две продажи одного товара с разными названиями считаются раздельно.
type ItemCount struct {
	Title string          `json:"title"`
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

// CustomerProfile — финансовый профиль одного клиента за период.
type CustomerProfile struct {
	CustomerID              uuid.UUID       `json:"customer_id"`
	Period                  *PeriodReport   `json:"period"`
	TotalRevenue            decimal.Decimal `json:"total_revenue"`
	TransactionCount        int             `json:"transaction_count"`
	AverageTransactionValue decimal.Decimal `json:"average_transaction_value"`
	TopItems                []ItemCount     `json:"top_items"`
}
