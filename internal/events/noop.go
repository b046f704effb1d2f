package events

// NoopSubscriber is a Subscriber that never delivers (used when NATS is not
// configured and watch mode falls back to polling).
type NoopSubscriber struct{}

func (n *NoopSubscriber) Subscribe(topic string) (<-chan []byte, func(), error) {
	ch := make(chan []byte)
	var closed bool
	cancel := func() {
		if !closed {
			closed = true
			close(ch)
		}
	}
	return ch, cancel, nil
}

func (n *NoopSubscriber) Close() error {
	return nil
}
