package crdt

import (
	"sync"
	"time"
)

// MonotonicClock выдает метки времени устройства, которые никогда не убывают,
// даже если системные часы переведены назад.
// Используется журналом изменений для упорядочивания локальных записей.
type MonotonicClock struct {
	now  func() time.Time // источник физического времени
	last time.Time        // последняя выданная метка
	mu   sync.Mutex       // мьютекс для потокобезопасности
}

// NewMonotonicClock создает часы поверх time.Now.
func NewMonotonicClock() *MonotonicClock {
	return NewMonotonicClockWithSource(time.Now)
}

// NewMonotonicClockWithSource создает часы с заданным источником времени.
// Используется для тестирования.
func NewMonotonicClockWithSource(now func() time.Time) *MonotonicClock {
	return &MonotonicClock{now: now}
}

// Now возвращает max(физическое время, последняя метка) в UTC.
func (c *MonotonicClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := c.now().UTC()
	if t.Before(c.last) {
		t = c.last
	}
	c.last = t

	return t
}

// Observe сдвигает нижнюю границу часов на t, если t позже последней метки.
// Используется для восстановления состояния после перезапуска
// (по последней записи журнала).
func (c *MonotonicClock) Observe(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if t.After(c.last) {
		c.last = t.UTC()
	}
}

// Last возвращает последнюю выданную метку без сдвига часов.
func (c *MonotonicClock) Last() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.last
}
