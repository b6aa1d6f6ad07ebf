// Package domain contains the trade form, its fee model and validation rules.
package domain

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fd1az/dox-arbitrage/internal/catalog"
)

// Field names a form input.
type Field string

const (
	FieldNetwork           Field = "network"
	FieldBorrowingProtocol Field = "borrowingProtocol"
	FieldDEXFrom           Field = "dexFrom"
	FieldDEXTo             Field = "dexTo"
	FieldCoinFrom          Field = "coinFrom"
	FieldCoinTo            Field = "coinTo"
	FieldAmountFrom        Field = "amountFrom"
	FieldAmountTo          Field = "amountTo"
	FieldGasBudget         Field = "gasBudget"
)

// Fields lists every field in form order.
var Fields = []Field{
	FieldNetwork,
	FieldBorrowingProtocol,
	FieldDEXFrom,
	FieldDEXTo,
	FieldCoinFrom,
	FieldCoinTo,
	FieldAmountFrom,
	FieldAmountTo,
	FieldGasBudget,
}

// ParseField resolves a field from its name, case-insensitively.
func ParseField(name string) (Field, bool) {
	for _, f := range Fields {
		if strings.EqualFold(string(f), name) {
			return f, true
		}
	}
	return "", false
}

// Label is the human-readable field name.
func (f Field) Label() string {
	switch f {
	case FieldNetwork:
		return "Network"
	case FieldBorrowingProtocol:
		return "Borrowing Protocol"
	case FieldDEXFrom:
		return "Arbitrage From"
	case FieldDEXTo:
		return "Arbitrage To"
	case FieldCoinFrom:
		return "Coin From"
	case FieldCoinTo:
		return "Coin To"
	case FieldAmountFrom:
		return "Amount From"
	case FieldAmountTo:
		return "Amount To"
	case FieldGasBudget:
		return "Gas Fee Budget (USD)"
	default:
		return string(f)
	}
}

// Kind returns the catalog list backing a selection field.
func (f Field) Kind() (catalog.Kind, bool) {
	switch f {
	case FieldNetwork:
		return catalog.KindNetwork, true
	case FieldBorrowingProtocol:
		return catalog.KindProtocol, true
	case FieldDEXFrom:
		return catalog.KindDEXFrom, true
	case FieldDEXTo:
		return catalog.KindDEXTo, true
	case FieldCoinFrom, FieldCoinTo:
		return catalog.KindCoin, true
	default:
		return "", false
	}
}

// IsNumeric reports whether the field holds an amount.
func (f Field) IsNumeric() bool {
	return f == FieldAmountFrom || f == FieldAmountTo || f == FieldGasBudget
}

// FormState is the user's current selection. Amounts are optional.
type FormState struct {
	Network           string              `json:"network"`
	BorrowingProtocol string              `json:"borrowingProtocol"`
	DEXFrom           string              `json:"dexFrom"`
	DEXTo             string              `json:"dexTo"`
	CoinFrom          string              `json:"coinFrom"`
	CoinTo            string              `json:"coinTo"`
	AmountFrom        decimal.NullDecimal `json:"amountFrom"`
	AmountTo          decimal.NullDecimal `json:"amountTo"`
	GasBudget         decimal.NullDecimal `json:"gasBudget"`
}

// DefaultFormState returns the first option of every list, with the second coin as target.
func DefaultFormState(reg *catalog.Registry) FormState {
	first := func(kind catalog.Kind) string {
		opt, err := reg.Default(kind)
		if err != nil {
			return ""
		}
		return opt.Value
	}

	coinTo, err := reg.At(catalog.KindCoin, 1)
	if err != nil {
		coinTo = catalog.Option{}
	}

	return FormState{
		Network:           first(catalog.KindNetwork),
		BorrowingProtocol: first(catalog.KindProtocol),
		DEXFrom:           first(catalog.KindDEXFrom),
		DEXTo:             first(catalog.KindDEXTo),
		CoinFrom:          first(catalog.KindCoin),
		CoinTo:            coinTo.Value,
	}
}

// Amount wraps a value as a set optional amount.
func Amount(v decimal.Decimal) decimal.NullDecimal {
	return decimal.NewNullDecimal(v)
}

// Amounts must stay below MaxAmount and carry at most maxAmountScale decimals.
// The exponent is checked first so oversized scientific input is refused without expanding it.
var MaxAmount = decimal.New(1, maxAmountDigits)

const (
	maxAmountDigits = 15
	maxAmountScale  = 18
)

// AmountInRange reports whether v can be priced and rendered.
func AmountInRange(v decimal.Decimal) bool {
	exp := v.Exponent()
	if exp < -maxAmountScale || exp >= maxAmountDigits {
		return false
	}
	return v.Abs().LessThan(MaxAmount)
}

// Positive reports whether an optional amount is set and greater than zero.
func Positive(n decimal.NullDecimal) bool {
	return n.Valid && n.Decimal.IsPositive()
}

// TradeAmount is amountFrom when positive, else amountTo when positive, else zero.
func (f FormState) TradeAmount() decimal.Decimal {
	switch {
	case Positive(f.AmountFrom):
		return f.AmountFrom.Decimal
	case Positive(f.AmountTo):
		return f.AmountTo.Decimal
	default:
		return decimal.Zero
	}
}

// NeedsGasBudget is true when neither amount is positive.
func (f FormState) NeedsGasBudget() bool {
	return !Positive(f.AmountFrom) && !Positive(f.AmountTo)
}

// TokenPair renders the pair as "FROM/TO".
func (f FormState) TokenPair() string {
	return f.CoinFrom + "/" + f.CoinTo
}

// Selection returns the value of a selection field.
func (f FormState) Selection(field Field) string {
	switch field {
	case FieldNetwork:
		return f.Network
	case FieldBorrowingProtocol:
		return f.BorrowingProtocol
	case FieldDEXFrom:
		return f.DEXFrom
	case FieldDEXTo:
		return f.DEXTo
	case FieldCoinFrom:
		return f.CoinFrom
	case FieldCoinTo:
		return f.CoinTo
	default:
		return ""
	}
}

// AmountOf returns the value of a numeric field.
func (f FormState) AmountOf(field Field) decimal.NullDecimal {
	switch field {
	case FieldAmountFrom:
		return f.AmountFrom
	case FieldAmountTo:
		return f.AmountTo
	case FieldGasBudget:
		return f.GasBudget
	default:
		return decimal.NullDecimal{}
	}
}

// With returns a copy with a selection field replaced. Unknown fields are ignored.
func (f FormState) With(field Field, value string) FormState {
	switch field {
	case FieldNetwork:
		f.Network = value
	case FieldBorrowingProtocol:
		f.BorrowingProtocol = value
	case FieldDEXFrom:
		f.DEXFrom = value
	case FieldDEXTo:
		f.DEXTo = value
	case FieldCoinFrom:
		f.CoinFrom = value
	case FieldCoinTo:
		f.CoinTo = value
	}
	return f
}

// WithAmount returns a copy with a numeric field replaced. Unknown fields are ignored.
func (f FormState) WithAmount(field Field, v decimal.NullDecimal) FormState {
	switch field {
	case FieldAmountFrom:
		f.AmountFrom = v
	case FieldAmountTo:
		f.AmountTo = v
	case FieldGasBudget:
		f.GasBudget = v
	}
	return f
}
