package field

// table is the lookup-table strategy. Every entry is produced by the
// calculator, so the tables are a materialized cache of the calculated
// results: exp[i] = primitive^i and logs[exp[i]] = i. In odd
// characteristic, addition goes through Zech logarithms,
// zech[n] = log(1 + primitive^n), or -1 when 1 + primitive^n = 0.
type table struct {
	p     uint64
	order uint64    // q - 1, the size of the multiplicative group
	exp   []Element // doubled so that exp[i+j] needs no reduction
	logs  []uint64
	zech  []int64
}

func newTable(c *calculator) *table {
	order := c.q - 1
	t := &table{
		p:     c.p,
		order: order,
		exp:   make([]Element, 2*order),
		logs:  make([]uint64, c.q),
	}

	x := Element(1)
	for i := uint64(0); i < order; i++ {
		t.exp[i] = x
		t.exp[i+order] = x
		t.logs[x] = i
		x = c.mul(x, c.primitive)
	}

	if c.p != 2 {
		t.zech = make([]int64, order)
		for n := uint64(0); n < order; n++ {
			if s := c.add(1, t.exp[n]); s == 0 {
				t.zech[n] = -1
			} else {
				t.zech[n] = int64(t.logs[s])
			}
		}
	}

	return t
}

func (t *table) add(a, b Element) Element {
	if t.p == 2 {
		return a ^ b
	}
	if a == 0 {
		return b
	}
	if b == 0 {
		return a
	}
	x, y := t.logs[a], t.logs[b]
	z := t.zech[(y+t.order-x)%t.order]
	if z < 0 {
		return 0
	}
	return t.exp[x+uint64(z)]
}

func (t *table) neg(a Element) Element {
	if t.p == 2 || a == 0 {
		return a
	}
	// -1 = primitive^((q-1)/2) in odd characteristic
	return t.exp[t.logs[a]+t.order/2]
}

func (t *table) sub(a, b Element) Element {
	return t.add(a, t.neg(b))
}

func (t *table) mul(a, b Element) Element {
	if a == 0 || b == 0 {
		return 0
	}
	return t.exp[t.logs[a]+t.logs[b]]
}

func (t *table) reciprocal(a Element) Element {
	return t.exp[t.order-t.logs[a]]
}

func (t *table) power(a Element, e uint64) Element {
	if a == 0 {
		if e == 0 {
			return 1
		}
		return 0
	}
	return t.exp[(t.logs[a]*(e%t.order))%t.order]
}

func (t *table) log(a Element) uint64 {
	return t.logs[a]
}
