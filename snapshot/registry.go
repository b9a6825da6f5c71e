package snapshot

import (
	"fmt"
	"strings"

	"github.com/krazyTry/balancer-go/withdraw"
)

// Registry indexes pools by address. It is read-only once built.
type Registry struct {
	pools map[string]*withdraw.Pool
	order []*withdraw.Pool
}

// NewRegistry rejects duplicate pool addresses.
func NewRegistry(pools []*withdraw.Pool) (*Registry, error) {
	r := &Registry{pools: make(map[string]*withdraw.Pool, len(pools))}
	for _, p := range pools {
		key := strings.ToLower(p.Address)
		if _, dup := r.pools[key]; dup {
			return nil, fmt.Errorf("%w: duplicate pool %s", ErrInvalidSnapshot, p.Address)
		}
		r.pools[key] = p
		r.order = append(r.order, p)
	}
	return r, nil
}

// LoadRegistry is Load followed by NewRegistry.
func LoadRegistry(path string) (*Registry, error) {
	pools, err := Load(path)
	if err != nil {
		return nil, err
	}
	return NewRegistry(pools)
}

func (r *Registry) Get(address string) (*withdraw.Pool, bool) {
	p, ok := r.pools[strings.ToLower(strings.TrimSpace(address))]
	return p, ok
}

// All returns the pools in snapshot order.
func (r *Registry) All() []*withdraw.Pool {
	out := make([]*withdraw.Pool, len(r.order))
	copy(out, r.order)
	return out
}

func (r *Registry) Len() int {
	return len(r.order)
}
