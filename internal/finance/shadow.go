// Package finance реализует движок сверки регулярной выручки:
// дедупликацию доходов между главной книгой и платежами подписок,
// проекцию будущих обязательств, помесячную агрегацию и расчёт точки
// безубыточности.
//
// Все функции пакета — чистые преобразования над снимком записей:
// они не выполняют ввод-вывод, не хранят состояние и не возвращают
// ошибок. Пустой вход — корректный вход с нулевым результатом.
package finance

import (
	"github.com/google/uuid"

	"github.com/magabrotheeeer/revenue-aggregator/internal/models"
)

// ShadowSet — множество идентификаторов записей главной книги, которые
// являются «тенями» платежей подписок. Доходная запись учитывается в
// общих суммах тогда и только тогда, когда её id отсутствует в множестве.
type ShadowSet map[uuid.UUID]struct{}

// BuildShadowSet собирает множество ненулевых financial_entry_id по всем
// платежам подписок. Идентификатор, указывающий на уже удалённую запись,
// безвреден: он просто никогда не совпадёт ни с одной записью.
func BuildShadowSet(payments []models.SubscriptionPayment) ShadowSet {
	set := make(ShadowSet, len(payments))
	for _, p := range payments {
		if p.FinancialEntryID.Valid {
			set[p.FinancialEntryID.UUID] = struct{}{}
		}
	}
	return set
}

// Contains сообщает, является ли запись с данным id тенью платежа подписки.
func (s ShadowSet) Contains(id uuid.UUID) bool {
	_, ok := s[id]
	return ok
}
