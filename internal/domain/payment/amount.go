package payment

import (
	"strings"

	"github.com/shopspring/decimal"
)

// zeroDecimalCurrencies are charged in whole units by card processors
var zeroDecimalCurrencies = map[string]bool{
	"BIF": true, "CLP": true, "DJF": true, "GNF": true, "JPY": true,
	"KMF": true, "KRW": true, "MGA": true, "PYG": true, "RWF": true,
	"UGX": true, "VND": true, "VUV": true, "XAF": true, "XOF": true,
	"XPF": true,
}

// IsZeroDecimalCurrency reports whether amounts in currency carry no minor unit
func IsZeroDecimalCurrency(currency string) bool {
	return zeroDecimalCurrencies[strings.ToUpper(currency)]
}

// MinorUnits converts a major-unit amount to the provider's smallest unit,
// rounding half away from zero.
func MinorUnits(amount decimal.Decimal, currency string) int64 {
	if IsZeroDecimalCurrency(currency) {
		return amount.Round(0).IntPart()
	}
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// MajorUnits converts a provider amount in the smallest unit back to major units
func MajorUnits(minor int64, currency string) decimal.Decimal {
	if IsZeroDecimalCurrency(currency) {
		return decimal.NewFromInt(minor)
	}
	return decimal.New(minor, -2)
}

// ConvertAtRate converts amount into a currency quoted at rate units of the
// source currency per target unit. The result is rounded to cents and never
// below the minimum of one target unit.
func ConvertAtRate(amount, rate decimal.Decimal) decimal.Decimal {
	converted := amount.Div(rate).Round(2)
	if one := decimal.NewFromInt(1); converted.LessThan(one) {
		return one
	}
	return converted
}
