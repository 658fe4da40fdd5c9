package finance

import (
	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/revenue-aggregator/internal/models"
)

var (
	hundred    = decimal.NewFromInt(100)
	twoHundred = decimal.NewFromInt(200)
)

// progress возвращает доход в процентах от расходов. Деление на ноль
// разрешается явной веткой: 200 при наличии дохода без расходов и 0,
// когда нет ни того, ни другого. Эти значения — часть контракта с
// потребителями (шкала на дашборде обрезает их при отображении),
// менять их нельзя.
func progress(income, expenses decimal.Decimal) decimal.Decimal {
	if expenses.IsPositive() {
		return income.Div(expenses).Mul(hundred)
	}
	if income.IsPositive() {
		return twoHundred
	}
	return decimal.Zero
}

// BreakEven считает точку безубыточности за целый период. Формула и
// граничные случаи идентичны помесячному расчёту в Aggregate: дашборд
// показывает карточку периода рядом с помесячной сеткой, любое
// расхождение между ними — наблюдаемая ошибка. Функция тотальна:
// не возвращает ошибок и не порождает NaN или Inf.
func BreakEven(paidIncome, paidExpenses decimal.Decimal) models.BreakEven {
	return models.BreakEven{
		Progress: progress(paidIncome, paidExpenses),
		Surplus:  paidIncome.Sub(paidExpenses),
	}
}
