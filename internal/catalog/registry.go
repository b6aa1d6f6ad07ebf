package catalog

import (
	"fmt"
	"sync"
)

// Registry is a thread-safe registry of option lists.
type Registry struct {
	options map[Kind][]Option
	index   map[Kind]map[string]int
	wallets map[string]Wallet
	chains  map[string]uint64
	mu      sync.RWMutex
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		options: make(map[Kind][]Option),
		index:   make(map[Kind]map[string]int),
		wallets: make(map[string]Wallet),
		chains:  make(map[string]uint64),
	}
}

// Register appends options to a kind. Panics on a duplicate value or an empty one.
func (r *Registry) Register(kind Kind, opts ...Option) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.index[kind] == nil {
		r.index[kind] = make(map[string]int)
	}
	for _, o := range opts {
		if o.Value == "" {
			panic(fmt.Sprintf("catalog: empty value in %s", kind))
		}
		if _, exists := r.index[kind][o.Value]; exists {
			panic(fmt.Sprintf("catalog: %s %q already registered", kind, o.Value))
		}
		r.index[kind][o.Value] = len(r.options[kind])
		r.options[kind] = append(r.options[kind], o)
	}
}

// RegisterWallet adds a wallet provider.
func (r *Registry) RegisterWallet(w Wallet) {
	r.Register(KindWallet, w.Option())

	r.mu.Lock()
	r.wallets[w.ID] = w
	r.mu.Unlock()
}

// RegisterChainID records the EVM chain id of a network, when it has one.
func (r *Registry) RegisterChainID(network string, chainID uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.chains[network] = chainID
}

// Options returns a copy of the options of kind, in registration order.
func (r *Registry) Options(kind Kind) []Option {
	r.mu.RLock()
	defer r.mu.RUnlock()

	opts := r.options[kind]
	result := make([]Option, len(opts))
	copy(result, opts)
	return result
}

// Has reports whether value is a registered option of kind.
func (r *Registry) Has(kind Kind, value string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.index[kind][value]
	return ok
}

// Label returns the display label of value, or value itself when unknown.
func (r *Registry) Label(kind Kind, value string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i, ok := r.index[kind][value]; ok {
		return r.options[kind][i].Label
	}
	return value
}

// Default returns the first option of kind.
func (r *Registry) Default(kind Kind) (Option, error) {
	return r.At(kind, 0)
}

// At returns the option at position i of kind.
func (r *Registry) At(kind Kind, i int) (Option, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	opts, ok := r.options[kind]
	if !ok {
		return Option{}, ErrUnknownKind{Kind: kind}
	}
	if i < 0 || i >= len(opts) {
		return Option{}, fmt.Errorf("catalog: %s has no option at %d", kind, i)
	}
	return opts[i], nil
}

// Cycle returns the option step positions away from value, wrapping around.
// An unknown value starts from the first option.
func (r *Registry) Cycle(kind Kind, value string, step int) string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	opts := r.options[kind]
	if len(opts) == 0 {
		return value
	}
	i, ok := r.index[kind][value]
	if !ok {
		return opts[0].Value
	}
	n := len(opts)
	return opts[((i+step)%n+n)%n].Value
}

// Wallet retrieves a wallet provider by id.
func (r *Registry) Wallet(id string) (Wallet, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.wallets[id]
	return w, ok
}

// Wallets returns every wallet in registration order.
func (r *Registry) Wallets() []Wallet {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Wallet, 0, len(r.options[KindWallet]))
	for _, o := range r.options[KindWallet] {
		result = append(result, r.wallets[o.Value])
	}
	return result
}

// ChainID returns the EVM chain id of a network.
func (r *Registry) ChainID(network string) (uint64, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.chains[network]
	return id, ok
}

// Count returns the number of options of kind.
func (r *Registry) Count(kind Kind) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.options[kind])
}
