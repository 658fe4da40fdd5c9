// Package month содержит вспомогательные функции для работы с календарными
// месяцами: нормализация даты к началу месяца, пошаговый обход месяцев
// и форматирование ключа месяца для агрегатов.
package month

import (
	"fmt"
	"time"
)

// StartOf возвращает первое число месяца даты t в UTC, время 00:00:00.
func StartOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// Next возвращает начало следующего календарного месяца после t.
func Next(t time.Time) time.Time {
	return StartOf(t).AddDate(0, 1, 0)
}

// EndOf возвращает последний день месяца даты t, время 00:00:00 UTC.
func EndOf(t time.Time) time.Time {
	return Next(t).AddDate(0, 0, -1)
}

// Add возвращает начало месяца, отстоящего от месяца t на n месяцев вперёд.
func Add(t time.Time, n int) time.Time {
	return StartOf(t).AddDate(0, n, 0)
}

// Key форматирует месяц даты t в виде YYYY-MM — ключ помесячной корзины.
func Key(t time.Time) string {
	return t.Format("2006-01")
}

// KeyOf форматирует пару (год, месяц) в виде YYYY-MM.
func KeyOf(year, m int) string {
	return fmt.Sprintf("%04d-%02d", year, m)
}

// Same сообщает, относятся ли даты a и b к одному календарному месяцу.
func Same(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}
