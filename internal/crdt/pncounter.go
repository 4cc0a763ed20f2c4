package crdt

import "maps"

// PNCounter представляет счетчик с поддержкой инкремента и декремента.
// Каждый узел увеличивает только свои собственные счетчики,
// поэтому слияние через поэлементный максимум безопасно.
type PNCounter struct {
	Increments map[string]uint64 `json:"increments"`
	Decrements map[string]uint64 `json:"decrements"`
}

// NewPNCounter создает пустой счетчик.
func NewPNCounter() PNCounter {
	return PNCounter{
		Increments: make(map[string]uint64),
		Decrements: make(map[string]uint64),
	}
}

// Increment возвращает новый счетчик, увеличенный на n от имени узла nodeID.
func (c PNCounter) Increment(nodeID string, n uint64) PNCounter {
	next := c.clone()
	next.Increments[nodeID] += n
	return next
}

// Decrement возвращает новый счетчик, уменьшенный на n от имени узла nodeID.
func (c PNCounter) Decrement(nodeID string, n uint64) PNCounter {
	next := c.clone()
	next.Decrements[nodeID] += n
	return next
}

// Value возвращает sum(increments) - sum(decrements).
func (c PNCounter) Value() int64 {
	var total int64
	for _, v := range c.Increments {
		total += int64(v)
	}
	for _, v := range c.Decrements {
		total -= int64(v)
	}
	return total
}

// Merge берет поэлементный максимум по каждому узлу, встреченному в любом из операндов.
func (c PNCounter) Merge(other PNCounter) PNCounter {
	return PNCounter{
		Increments: mergeMax(c.Increments, other.Increments),
		Decrements: mergeMax(c.Decrements, other.Decrements),
	}
}

// Equal сравнивает счетчики поузлово (отсутствующий узел равен нулю).
func (c PNCounter) Equal(other PNCounter) bool {
	return equalCounts(c.Increments, other.Increments) && equalCounts(c.Decrements, other.Decrements)
}

func (c PNCounter) clone() PNCounter {
	next := NewPNCounter()
	maps.Copy(next.Increments, c.Increments)
	maps.Copy(next.Decrements, c.Decrements)
	return next
}

func mergeMax(a, b map[string]uint64) map[string]uint64 {
	result := make(map[string]uint64, len(a)+len(b))
	maps.Copy(result, a)
	for node, v := range b {
		if v > result[node] {
			result[node] = v
		}
	}
	return result
}

func equalCounts(a, b map[string]uint64) bool {
	for node, v := range a {
		if b[node] != v {
			return false
		}
	}
	for node, v := range b {
		if a[node] != v {
			return false
		}
	}
	return true
}
