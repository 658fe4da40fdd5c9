package models

import "time"

// Window представляет произвольный период агрегации [Start, End].
// Обе границы включительны.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains сообщает, попадает ли момент t в окно (границы включительно).
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// IsZero сообщает, что окно не задано.
func (w Window) IsZero() bool {
	return w.Start.IsZero() && w.End.IsZero()
}

// DummyWindow используется для приёма периода из JSON-запроса,
// прежде чем конвертировать его в Window. Даты приходят строками
// в формате 02-01-2006, чтобы их можно было валидировать и парсить вручную.
type DummyWindow struct {
	StartDate string `json:"start_date" validate:"required"` // Дата начала периода в формате 02-01-2006
	EndDate   string `json:"end_date" validate:"required"`   // Дата окончания периода в формате 02-01-2006
}

// DummyCustomerFilter используется для приёма параметров отчёта по клиенту
// из JSON-запроса.
type DummyCustomerFilter struct {
	CustomerID string `json:"customer_id" validate:"required,uuid"` // Идентификатор клиента
	StartDate  string `json:"start_date" validate:"required"`       // Дата начала периода в формате 02-01-2006
	EndDate    string `json:"end_date" validate:"required"`         // Дата окончания периода в формате 02-01-2006
}
