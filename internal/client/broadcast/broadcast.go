// Package broadcast рассылает последнее значение состояния подписчикам.
package broadcast

import "sync"

// Broadcaster хранит текущее значение и рассылает его подписчикам.
// Каждый канал подписчика имеет емкость 1 и всегда содержит самое новое
// недоставленное значение: медленный подписчик пропускает промежуточные
// состояния, но никогда не блокирует издателя.
type Broadcaster[T any] struct {
	current T
	subs    map[uint64]chan T
	nextID  uint64
	closed  bool
	mu      sync.Mutex
}

// New создает broadcaster с начальным значением
func New[T any](initial T) *Broadcaster[T] {
	return &Broadcaster[T]{
		current: initial,
		subs:    make(map[uint64]chan T),
	}
}

// Current возвращает последнее опубликованное значение
func (b *Broadcaster[T]) Current() T {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current
}

// Publish сохраняет значение и доставляет его всем подписчикам
func (b *Broadcaster[T]) Publish(v T) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	b.current = v
	for _, ch := range b.subs {
		deliver(ch, v)
	}
}

// Update атомарно вычисляет новое значение из текущего и рассылает его.
// fn вызывается под мьютексом и не должна обращаться к broadcaster.
func (b *Broadcaster[T]) Update(fn func(T) T) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	b.current = fn(b.current)
	for _, ch := range b.subs {
		deliver(ch, b.current)
	}
}

// Subscribe возвращает канал обновлений и функцию отписки.
// В канале сразу лежит текущее значение.
func (b *Broadcaster[T]) Subscribe() (<-chan T, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan T, 1)
	if b.closed {
		close(ch)
		return ch, func() {}
	}

	id := b.nextID
	b.nextID++
	b.subs[id] = ch
	ch <- b.current

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if sub, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(sub)
			}
		})
	}

	return ch, cancel
}

// Close закрывает каналы всех подписчиков. Последующие Publish игнорируются.
func (b *Broadcaster[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}

// deliver заменяет недоставленное значение новым.
// Вызывается под мьютексом, поэтому второй select всегда успешен.
func deliver[T any](ch chan T, v T) {
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- v:
	default:
	}
}
