// Package models содержит доменные структуры четырёх потоков записей
// (финансовые движения, подписки, платежи по подпискам, продажи),
// а также вспомогательные типы для приёма данных из JSON-запросов.
//
// Движок агрегации никогда не изменяет эти записи — они читаются из
// хранилища и обрабатываются как неизменяемый снимок.
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EntryType тип финансового движения: доход или расход.
type EntryType string

const (
	// EntryTypeIncome — доходное движение.
	EntryTypeIncome EntryType = "income"
	// EntryTypeExpense — расходное движение.
	EntryTypeExpense EntryType = "expense"
)

// PaymentStatus статус оплаты записи.
type PaymentStatus string

const (
	// PaymentStatusPaid — запись полностью оплачена.
	PaymentStatusPaid PaymentStatus = "paid"
	// PaymentStatusPending — оплата ожидается.
	PaymentStatusPending PaymentStatus = "pending"
	// PaymentStatusPartial — запись оплачена частично.
	PaymentStatusPartial PaymentStatus = "partial"
)

// FinancialEntry представляет одно движение в главной книге.
// Все денежные суммы хранятся как decimal, чтобы суммирование не давало
// расхождений на уровне копеек между дашбордом и выгруженными отчётами.
//
// Если PaymentStatus == paid, но PaidAt не задан, запись не попадает
// в периодные корзины по оплате — это наблюдаемое поведение исходных
// данных, его нельзя «чинить» внутри движка.
type FinancialEntry struct {
	ID              uuid.UUID           `json:"id"`
	Type            EntryType           `json:"type"`
	Amount          decimal.Decimal     `json:"amount"`
	PaymentStatus   PaymentStatus       `json:"payment_status"`
	RemainingAmount decimal.NullDecimal `json:"remaining_amount,omitempty"` // Остаток к оплате при частичной оплате
	CreatedAt       time.Time           `json:"created_at"`
	DueDate         *time.Time          `json:"due_date,omitempty"`
	PaidAt          *time.Time          `json:"paid_at,omitempty"`
	CustomerID      uuid.NullUUID       `json:"customer_id,omitempty"`
	CategoryID      uuid.NullUUID       `json:"category_id,omitempty"` // Категория, только для расходов
}

// Outstanding возвращает сумму, ожидающую оплаты: remaining_amount,
// если он задан, иначе полную сумму записи.
func (e FinancialEntry) Outstanding() decimal.Decimal {
	if e.RemainingAmount.Valid {
		return e.RemainingAmount.Decimal
	}
	return e.Amount
}

// Sale представляет продажу — отдельный канал выручки, который не
// дедуплицируется с записями главной книги.
type Sale struct {
	ID            uuid.UUID       `json:"id"`
	CustomerID    uuid.NullUUID   `json:"customer_id,omitempty"`
	Title         string          `json:"title"` // Свободный текст, без нормализации
	Amount        decimal.Decimal `json:"amount"`
	PaymentStatus PaymentStatus   `json:"payment_status"`
	CreatedAt     time.Time       `json:"created_at"`
	PaidAt        *time.Time      `json:"paid_at,omitempty"`
}

// Snapshot содержит все четыре набора записей, прочитанные из хранилища
// в рамках одного согласованного чтения. Движок работает только с таким
// снимком целиком, частичные чтения нарушают инварианты дедупликации.
type Snapshot struct {
	Entries       []FinancialEntry
	Subscriptions []Subscription
	Payments      []SubscriptionPayment
	Sales         []Sale
}
