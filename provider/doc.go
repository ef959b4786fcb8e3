// Package provider defines the base contract shared by swappable backends
// and a typed key-value state store.
//
// ContextStore[C] is the persistence interface used by the transcript
// cache; MemoryStore is the in-memory implementation and redis.TypedStore
// the Redis-backed one.
//
//	store := provider.NewMemoryStore[CachedTranscript]()
//	_ = store.Save(ctx, key, &entry, time.Hour)
package provider
