package crdt

import (
	"fmt"
	"sort"
)

// LWWRegister представляет Last-Write-Wins регистр.
// Хранит одно значение и метку (timestamp, nodeID) последней записи.
// Значение иммутабельно: Set и Merge возвращают новый регистр.
type LWWRegister[V any] struct {
	Value     V      `json:"value"`
	NodeID    string `json:"node_id"`
	Timestamp int64  `json:"timestamp"`
}

// NewLWWRegister создает регистр с начальным значением.
func NewLWWRegister[V any](value V, timestamp int64, nodeID string) LWWRegister[V] {
	return LWWRegister[V]{
		Value:     value,
		Timestamp: timestamp,
		NodeID:    nodeID,
	}
}

// Set возвращает новый регистр, если запись (timestamp, nodeID) новее текущей.
// Иначе возвращает текущий регистр без изменений.
func (r LWWRegister[V]) Set(value V, timestamp int64, nodeID string) LWWRegister[V] {
	return r.Merge(NewLWWRegister(value, timestamp, nodeID))
}

// Get возвращает материализованное значение регистра.
func (r LWWRegister[V]) Get() V {
	return r.Value
}

// IsNewerThan сравнивает два регистра по правилу LWW:
// 1. Больший Timestamp выигрывает
// 2. При равных Timestamp выигрывает больший NodeID (лексикографически)
// 3. При полном совпадении метки сравнивается каноническое представление значения,
// чтобы слияние оставалось коммутативным
func (r LWWRegister[V]) IsNewerThan(other LWWRegister[V]) bool {
	if r.Timestamp != other.Timestamp {
		return r.Timestamp > other.Timestamp
	}
	if r.NodeID != other.NodeID {
		return r.NodeID > other.NodeID
	}
	return valueKey(r.Value) > valueKey(other.Value)
}

// valueKey представление значения вместе с типом: 1 и "1" различаются
func valueKey(v any) string {
	return fmt.Sprintf("%#v", v)
}

// Merge возвращает победителя из двух регистров.
// Операция коммутативна, ассоциативна и идемпотентна.
func (r LWWRegister[V]) Merge(other LWWRegister[V]) LWWRegister[V] {
	if other.IsNewerThan(r) {
		return other
	}
	return r
}

// Map представляет CRDT-словарь, где каждому ключу соответствует LWW регистр.
// Удаление ключей не поддерживается (для этого нужен tombstone поверх регистра).
type Map[K comparable, V any] struct {
	entries map[K]LWWRegister[V]
}

// NewMap создает пустой словарь.
func NewMap[K comparable, V any]() Map[K, V] {
	return Map[K, V]{entries: make(map[K]LWWRegister[V])}
}

// Set возвращает новый словарь, в котором регистр ключа key слит с новой записью.
func (m Map[K, V]) Set(key K, value V, timestamp int64, nodeID string) Map[K, V] {
	next := m.clone()
	incoming := NewLWWRegister(value, timestamp, nodeID)
	if existing, ok := next.entries[key]; ok {
		next.entries[key] = existing.Merge(incoming)
	} else {
		next.entries[key] = incoming
	}
	return next
}

// Get возвращает значение по ключу.
func (m Map[K, V]) Get(key K) (V, bool) {
	reg, ok := m.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	return reg.Value, true
}

// Register возвращает регистр ключа вместе с меткой записи.
func (m Map[K, V]) Register(key K) (LWWRegister[V], bool) {
	reg, ok := m.entries[key]
	return reg, ok
}

// Len возвращает количество ключей.
func (m Map[K, V]) Len() int {
	return len(m.entries)
}

// Keys возвращает ключи словаря в неопределенном порядке.
func (m Map[K, V]) Keys() []K {
	keys := make([]K, 0, len(m.entries))
	for k := range m.entries {
		keys = append(keys, k)
	}
	return keys
}

// Value возвращает материализованное представление словаря.
func (m Map[K, V]) Value() map[K]V {
	result := make(map[K]V, len(m.entries))
	for k, reg := range m.entries {
		result[k] = reg.Value
	}
	return result
}

// Merge объединяет два словаря: объединение ключей,
// для общих ключей применяется LWWRegister.Merge.
func (m Map[K, V]) Merge(other Map[K, V]) Map[K, V] {
	result := m.clone()
	for k, otherReg := range other.entries {
		if existing, ok := result.entries[k]; ok {
			result.entries[k] = existing.Merge(otherReg)
			continue
		}
		result.entries[k] = otherReg
	}
	return result
}

// Equal проверяет, что словари содержат одинаковые регистры.
// Значения сравниваются через каноническое представление.
func (m Map[K, V]) Equal(other Map[K, V]) bool {
	if len(m.entries) != len(other.entries) {
		return false
	}
	for k, reg := range m.entries {
		otherReg, ok := other.entries[k]
		if !ok {
			return false
		}
		if reg.Timestamp != otherReg.Timestamp || reg.NodeID != otherReg.NodeID ||
			valueKey(reg.Value) != valueKey(otherReg.Value) {
			return false
		}
	}
	return true
}

// String выводит словарь в детерминированном порядке ключей (для логов и тестов).
func (m Map[K, V]) String() string {
	parts := make([]string, 0, len(m.entries))
	for k, reg := range m.entries {
		parts = append(parts, fmt.Sprintf("%v=%v@%d/%s", k, reg.Value, reg.Timestamp, reg.NodeID))
	}
	sort.Strings(parts)
	return fmt.Sprint(parts)
}

func (m Map[K, V]) clone() Map[K, V] {
	next := make(map[K]LWWRegister[V], len(m.entries))
	for k, reg := range m.entries {
		next[k] = reg
	}
	return Map[K, V]{entries: next}
}
