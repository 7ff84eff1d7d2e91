package field

import (
	"fmt"
	"sync"
)

// fieldKey identifies a field construction. The strategy is part of the key
// because it is resolved before lookup.
type fieldKey struct {
	p, m      uint64
	poly      string
	primitive Element
	strategy  Strategy
}

// fieldRegistry caches fields and default polynomials for the lifetime of
// the process. Entries are built on first use and never evicted.
type fieldRegistry struct {
	mu     sync.Mutex
	fields map[fieldKey]*Field
	polys  map[[2]uint64][]uint64
}

var registry = &fieldRegistry{
	fields: make(map[fieldKey]*Field),
	polys:  make(map[[2]uint64][]uint64),
}

// get returns the cached field for calc's parameters, building it (and its
// tables) when it is seen for the first time.
func (r *fieldRegistry) get(calc *calculator, strategy Strategy) *Field {
	key := fieldKey{
		p:         calc.p,
		m:         calc.m,
		poly:      fmt.Sprint(calc.poly),
		primitive: calc.primitive,
		strategy:  strategy,
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if f, ok := r.fields[key]; ok {
		return f
	}

	f := &Field{
		p:         calc.p,
		m:         calc.m,
		q:         calc.q,
		poly:      calc.poly,
		primitive: calc.primitive,
		strategy:  strategy,
		calc:      calc,
	}
	switch strategy {
	case StrategyTable:
		f.arith = newTable(calc)
		log.Debugf("built lookup tables for %s (poly %v, primitive %d)", f, calc.poly, calc.primitive)
	default:
		f.arith = calc
		log.Debugf("using calculated arithmetic for %s (poly %v, primitive %d)", f, calc.poly, calc.primitive)
	}
	r.fields[key] = f
	return f
}

func (r *fieldRegistry) smallestPrimitivePoly(p, m uint64) ([]uint64, error) {
	key := [2]uint64{p, m}

	r.mu.Lock()
	defer r.mu.Unlock()

	if poly, ok := r.polys[key]; ok {
		return append([]uint64(nil), poly...), nil
	}
	poly, err := findPrimitivePoly(p, m)
	if err != nil {
		return nil, err
	}
	log.Debugf("smallest primitive polynomial of degree %d over GF(%d): %v", m, p, poly)
	r.polys[key] = poly
	return append([]uint64(nil), poly...), nil
}
