package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Subscription представляет соглашение о регулярной ежемесячной оплате.
// EndDate может быть nil — подписка бессрочная.
type Subscription struct {
	ID           uuid.UUID       `json:"id"`
	CustomerID   uuid.NullUUID   `json:"customer_id,omitempty"`
	MonthlyValue decimal.Decimal `json:"monthly_value"` // Стоимость за месяц, >= 0
	StartDate    time.Time       `json:"start_date"`
	EndDate      *time.Time      `json:"end_date,omitempty"`
	IsActive     bool            `json:"is_active"`
	PaymentDay   int             `json:"payment_day"` // Информационное поле, на проекцию не влияет
}

// SubscriptionPayment представляет состоявшийся или пропущенный платёж
// подписки за один календарный месяц. На пару (subscription_id, month, year)
// существует не более одной записи.
//
// Если FinancialEntryID задан, указанная запись главной книги является
// «тенью» этого платежа и исключается из общих доходных сумм,
// иначе доход был бы посчитан дважды.
type SubscriptionPayment struct {
	ID               uuid.UUID       `json:"id"`
	SubscriptionID   uuid.UUID       `json:"subscription_id"`
	Month            int             `json:"month"` // 1-12
	Year             int             `json:"year"`
	Amount           decimal.Decimal `json:"amount"`
	PaymentStatus    PaymentStatus   `json:"payment_status"` // paid или pending
	PaidAt           *time.Time      `json:"paid_at,omitempty"`
	FinancialEntryID uuid.NullUUID   `json:"financial_entry_id,omitempty"`
	IsSkipped        bool            `json:"is_skipped"` // Пропущенный месяц не даёт ни оплаченных, ни ожидаемых сумм
}

// ProjectedObligation — виртуальное обязательство по подписке за один
// календарный месяц. Синтезируется проектором для месяцев, у которых нет
// оплаченной записи платежа. Никогда не сохраняется в хранилище и не
// получает собственного идентификатора.
type ProjectedObligation struct {
	SubscriptionID uuid.UUID       `json:"subscription_id"`
	CustomerID     uuid.NullUUID   `json:"customer_id,omitempty"`
	Year           int             `json:"year"`
	Month          int             `json:"month"`
	Amount         decimal.Decimal `json:"amount"`
	HasRecord      bool            `json:"has_record"` // true, если существует реальная запись платежа со статусом pending
}
