package network

import (
	"sync"
)

// Frame - отрисованный кадр, рассылаемый зрителям.
type Frame struct {
	Turn      uint64   `json:"turn"`
	Level     int      `json:"level"`
	X         int      `json:"x"`
	Y         int      `json:"y"`
	Lines     []string `json:"lines"`
	Areas     int      `json:"areas"`
	Creatures int      `json:"creatures"`
	PlayerHP  int      `json:"playerHp"`
}

// Broadcaster занимается только рассылкой кадров подписчикам.
// Мир он не видит: движок отдаёт ему готовые кадры.
type Broadcaster struct {
	mu sync.RWMutex
	// Мапа: id подписчика -> личный канал
	subscribers map[string]chan Frame
	last        *Frame
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[string]chan Frame),
	}
}

// Register создает личный канал подписчика. Если кадр уже был,
// новый подписчик сразу его получает.
func (b *Broadcaster) Register(id string) chan Frame {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Если канал был, закрываем
	if old, ok := b.subscribers[id]; ok {
		close(old)
	}

	ch := make(chan Frame, 16)
	if b.last != nil {
		ch <- *b.last
	}
	b.subscribers[id] = ch
	return ch
}

// Unregister удаляет подписчика
func (b *Broadcaster) Unregister(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subscribers[id]; ok {
		close(ch)
		delete(b.subscribers, id)
	}
}

// Broadcast отправляет кадр всем. Медленный подписчик пропускает кадр.
func (b *Broadcaster) Broadcast(f Frame) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.last = &f
	for _, ch := range b.subscribers {
		select {
		case ch <- f:
		default:
		}
	}
}

// Last возвращает последний разосланный кадр.
func (b *Broadcaster) Last() (Frame, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.last == nil {
		return Frame{}, false
	}
	return *b.last, true
}

// HasSubscriber проверяет, подключён ли подписчик.
func (b *Broadcaster) HasSubscriber(id string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.subscribers[id]
	return ok
}

// SubscriberCount возвращает количество активных подписчиков.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
