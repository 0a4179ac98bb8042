package curves

import (
	"fmt"
	"sort"
	"sync"
)

// Names of the pre-registered groups.
const (
	NameSecp256k1 = "secp256k1"
	NameEd25519   = "ed25519"
	NameToy223    = "toy223"
	NameToy223x42 = "toy223-42"
)

var (
	registryMu sync.RWMutex
	registry   = map[string]Group{}
)

func init() {
	// y^2 = x^3 + 7 over F_223; (15, 86) has order 7, (192, 105) has order 42
	for _, g := range []Group{
		NewSecp256k1(),
		NewEd25519(),
		MustToy(NameToy223, 0, 7, 223, 15, 86),
		MustToy(NameToy223x42, 0, 7, 223, 192, 105),
	} {
		if err := Register(g.Name(), g); err != nil {
			panic(err)
		}
	}
}

// Register makes g available under name. Names are unique.
func Register(name string, g Group) error {
	if name == "" || g == nil {
		return fmt.Errorf("curves: invalid registration for %q", name)
	}

	registryMu.Lock()
	defer registryMu.Unlock()

	if _, ok := registry[name]; ok {
		return fmt.Errorf("curves: group %q already registered", name)
	}
	registry[name] = g
	return nil
}

// New returns the group registered under name.
func New(name string) (Group, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	g, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGroup, name)
	}
	return g, nil
}

// Names lists the registered group names in lexical order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
