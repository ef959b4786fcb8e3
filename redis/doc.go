// Package redis backs the transcript cache with go-redis.
//
// Client wraps a go-redis connection pool, Component manages its lifecycle,
// and TypedStore stores JSON values under a key prefix as a
// provider.ContextStore:
//
//	comp := redis.NewComponent(cfg, log)
//	_ = comp.Start(ctx)
//	store := redis.NewTypedStore[server.CachedTranscript](comp.Client(), "scribe:transcript")
package redis
