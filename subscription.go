package keychord

// Subscription represents an active observer or sequence registration.
type Subscription struct {
	cancel func()
}

// Unsubscribe removes the registration. Safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if s.cancel != nil {
		s.cancel()
	}
}
