package shared

import "github.com/shopspring/decimal"

// MoneyScale is the number of decimal places the money columns keep.
const MoneyScale = 4

// FitsMoneyScale reports whether d can be stored without rounding.
func FitsMoneyScale(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(MoneyScale))
}
