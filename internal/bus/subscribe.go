package bus

import (
	"slices"
)

// Subscribe calls fn immediately with keyID's current record, then after
// every accepted write to that key. The returned func unsubscribes.
func (b *Bus) Subscribe(keyID string, fn KeyFunc) (unsubscribe func()) {
	s := &subscription[KeyFunc]{fn: fn, active: true}
	b.keySubs[keyID] = append(b.keySubs[keyID], s)

	rec, ok := b.GetValue(keyID)
	fn(rec, ok)

	return func() {
		s.active = false
		b.keySubs[keyID] = remove(b.keySubs[keyID], s)

		if len(b.keySubs[keyID]) == 0 {
			delete(b.keySubs, keyID)
		}
	}
}

// SubscribeAll calls fn once per accepted Publish.
func (b *Bus) SubscribeAll(fn func()) (unsubscribe func()) {
	s := &subscription[func()]{fn: fn, active: true}
	b.allSubs = append(b.allSubs, s)

	return func() {
		s.active = false
		b.allSubs = remove(b.allSubs, s)
	}
}

// SubscribeEnvelopes calls fn with every accepted envelope.
func (b *Bus) SubscribeEnvelopes(fn EnvelopeFunc) (unsubscribe func()) {
	s := &subscription[EnvelopeFunc]{fn: fn, active: true}
	b.envSubs = append(b.envSubs, s)

	return func() {
		s.active = false
		b.envSubs = remove(b.envSubs, s)
	}
}

func remove[F any](subs []*subscription[F], s *subscription[F]) []*subscription[F] {
	return slices.DeleteFunc(subs, func(x *subscription[F]) bool { return x == s })
}
