package domain

import (
	"strings"

	"github.com/fd1az/dox-arbitrage/internal/catalog"
)

// Validation messages
const (
	MsgNetworkRequired   = "Network selection is required."
	MsgProtocolRequired  = "Borrowing protocol is required."
	MsgDEXFromRequired   = "Source DEX is required."
	MsgDEXToRequired     = "Target DEX is required."
	MsgCoinFromRequired  = "Source coin is required."
	MsgCoinToRequired    = "Target coin is required."
	MsgAmountNotPositive = "Amount must be positive."
	MsgBudgetNotPositive = "Gas fee budget must be positive."
	MsgAmountOrBudget    = "Either Source Amount, Target Amount, or Gas Fee Budget must be provided."
	MsgCoinsMustDiffer   = "Source and Target coins must be different."
	MsgDEXsMustDiffer    = "Source and Target DEXs must be different in a typical arbitrage."
	MsgUnsupportedOption = "is not a supported option."
	MsgAmountOutOfRange  = "Amount is out of range."
)

var requiredMessages = map[Field]string{
	FieldNetwork:           MsgNetworkRequired,
	FieldBorrowingProtocol: MsgProtocolRequired,
	FieldDEXFrom:           MsgDEXFromRequired,
	FieldDEXTo:             MsgDEXToRequired,
	FieldCoinFrom:          MsgCoinFromRequired,
	FieldCoinTo:            MsgCoinToRequired,
}

// FieldError is a validation failure attached to one field.
type FieldError struct {
	Field   Field  `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors holds at most one error per field, in form order.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, fe := range v {
		parts = append(parts, string(fe.Field)+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// For returns the message attached to field.
func (v ValidationErrors) For(field Field) (string, bool) {
	for _, fe := range v {
		if fe.Field == field {
			return fe.Message, true
		}
	}
	return "", false
}

// Validate checks the form against the catalog. An empty result means the form can be submitted.
func (f FormState) Validate(reg *catalog.Registry) ValidationErrors {
	found := make(map[Field]string)
	add := func(field Field, msg string) {
		if _, ok := found[field]; !ok {
			found[field] = msg
		}
	}

	for field, msg := range requiredMessages {
		value := f.Selection(field)
		if value == "" {
			add(field, msg)
			continue
		}
		if kind, ok := field.Kind(); ok && reg != nil && !reg.Has(kind, value) {
			add(field, reg.Label(kind, value)+" "+MsgUnsupportedOption)
		}
	}

	if f.AmountFrom.Valid && !f.AmountFrom.Decimal.IsPositive() {
		add(FieldAmountFrom, MsgAmountNotPositive)
	}
	if f.AmountTo.Valid && !f.AmountTo.Decimal.IsPositive() {
		add(FieldAmountTo, MsgAmountNotPositive)
	}
	if f.GasBudget.Valid && !f.GasBudget.Decimal.IsPositive() {
		add(FieldGasBudget, MsgBudgetNotPositive)
	}

	if !f.AmountFrom.Valid && !f.AmountTo.Valid && !f.GasBudget.Valid {
		add(FieldAmountFrom, MsgAmountOrBudget)
	}
	if f.CoinFrom != "" && f.CoinFrom == f.CoinTo {
		add(FieldCoinTo, MsgCoinsMustDiffer)
	}
	if f.DEXFrom != "" && f.DEXFrom == f.DEXTo {
		add(FieldDEXTo, MsgDEXsMustDiffer)
	}

	var errs ValidationErrors
	for _, field := range Fields {
		if msg, ok := found[field]; ok {
			errs = append(errs, FieldError{Field: field, Message: msg})
		}
	}
	return errs
}
