package broker

import "sync"

type Broker[T any] struct {
	topics      map[string]chan T
	maxSizeChan uint
	mu          sync.Mutex
}

func New[T any](maxCountMsgInTopic uint) *Broker[T] {
	return &Broker[T]{
		topics:      make(map[string]chan T),
		maxSizeChan: maxCountMsgInTopic,
	}
}

// Publish кладёт сообщение в топик, не блокируясь на переполненном канале
func (b *Broker[T]) Publish(topic string, msg T) {
	ch := b.Subscribe(topic)

	select {
	case ch <- msg:
	default:
		// Топик переполнен, сообщение отбрасывается
	}
}

func (b *Broker[T]) CloseTopic(topic string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if v, ok := b.topics[topic]; ok {
		close(v)
	}

	delete(b.topics, topic)
}

func (b *Broker[T]) Subscribe(topic string) chan T {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.topics[topic]; !ok {
		b.topics[topic] = make(chan T, b.maxSizeChan)
	}

	return b.topics[topic]
}
