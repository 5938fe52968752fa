package lib

import (
	"context"
	"log"
	"sync"
	"time"
)

// Allow reports whether a request identified by key is within limit hits per
// window. Backed by a Redis counter so the limit holds across processes; falls
// back to an in-process sliding window when Redis is unreachable.
func Allow(key string, limit int, window time.Duration) bool {
	rdb := GetRedisClient()
	if rdb == nil {
		return allowLocal(key, limit, window)
	}
	ctx := context.Background()
	count, err := rdb.Incr(ctx, "ratelimit:"+key).Result()
	if err != nil {
		log.Printf("[ratelimit] Redis error, using local fallback: %s\n", err.Error())
		return allowLocal(key, limit, window)
	}
	if count == 1 {
		rdb.Expire(ctx, "ratelimit:"+key, window)
	}
	return count <= int64(limit)
}

var (
	hitsMu sync.Mutex
	hits   = map[string][]time.Time{}
)

func allowLocal(key string, limit int, window time.Duration) bool {
	hitsMu.Lock()
	defer hitsMu.Unlock()
	now := time.Now()
	bucket := hits[key]
	kept := bucket[:0]
	for _, t := range bucket {
		if now.Sub(t) <= window {
			kept = append(kept, t)
		}
	}
	if len(kept) >= limit {
		hits[key] = kept
		return false
	}
	hits[key] = append(kept, now)
	return true
}

// ResetLimit clears the local bucket for a key. Test helper.
func ResetLimit(key string) {
	hitsMu.Lock()
	defer hitsMu.Unlock()
	delete(hits, key)
}
