// Package bus is the in-memory live distribution bus: the single source of
// truth for the current value of every key.
//
// Writes are resolved per key. A write is accepted unless the existing record
// has the same source id and a sequence number greater than or equal to the
// incoming one; a write from a different source always wins. Only a producer
// can suppress its own stale retransmission.
//
// The bus is synchronous and single-goroutine. Publish applies the envelope,
// fans out to subscribers on the caller's stack and returns. Subscribers see
// writes in publish order and must not call Publish themselves; doing so
// returns ErrReentrantPublish. A Bus is not safe for concurrent use.
package bus
