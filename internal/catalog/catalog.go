// Package catalog holds the static option lists the planner offers: networks,
// lending protocols, exchanges, tokens and wallets.
package catalog

import "fmt"

// Kind identifies one option list.
type Kind string

const (
	KindNetwork  Kind = "network"
	KindProtocol Kind = "protocol"
	KindDEXFrom  Kind = "dexFrom"
	KindDEXTo    Kind = "dexTo"
	KindCoin     Kind = "coin"
	KindWallet   Kind = "wallet"
)

// Kinds lists every option list in display order.
var Kinds = []Kind{KindNetwork, KindProtocol, KindDEXFrom, KindDEXTo, KindCoin, KindWallet}

func (k Kind) String() string {
	return string(k)
}

// Title is the heading used when listing a kind.
func (k Kind) Title() string {
	switch k {
	case KindNetwork:
		return "Networks"
	case KindProtocol:
		return "Borrowing Protocols"
	case KindDEXFrom:
		return "Source DEXs"
	case KindDEXTo:
		return "Target DEXs"
	case KindCoin:
		return "Coins"
	case KindWallet:
		return "Wallets"
	default:
		return string(k)
	}
}

// Option is one selectable entry: a stable id and a display label.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

func (o Option) String() string {
	return o.Label
}

// Wallet is a supported wallet provider.
type Wallet struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	// Injected wallets talk to a local provider; the rest are simulated.
	Injected bool `json:"injected"`
}

// Option returns the wallet as a generic option.
func (w Wallet) Option() Option {
	return Option{Value: w.ID, Label: w.Name}
}

// ErrUnknownKind is returned for lookups on a kind the registry does not hold.
type ErrUnknownKind struct {
	Kind Kind
}

func (e ErrUnknownKind) Error() string {
	return fmt.Sprintf("catalog: unknown kind %q", string(e.Kind))
}
