package middleware

import (
	"bytes"
	"crypto/sha1"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// cacheWriter buffers the body while forwarding it to the client
type cacheWriter struct {
	http.ResponseWriter
	statusCode int
	buf        bytes.Buffer
}

func (cw *cacheWriter) WriteHeader(code int) {
	cw.statusCode = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *cacheWriter) Write(b []byte) (int, error) {
	cw.buf.Write(b)
	return cw.ResponseWriter.Write(b)
}

func cacheKey(r *http.Request) string {
	sum := sha1.Sum([]byte(r.URL.Path + "?" + r.URL.RawQuery))
	return fmt.Sprintf("cache:%x", sum)
}

// Cache serves GET responses from Redis with the given TTL. Only 200
// responses are stored. A nil client makes the middleware a no-op, so
// the router wiring stays the same with or without Redis.
func Cache(rdb *redis.Client, ttl time.Duration, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if rdb == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}

			key := cacheKey(r)

			if body, err := rdb.Get(r.Context(), key).Bytes(); err == nil {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("X-Cache", "HIT")
				w.WriteHeader(http.StatusOK)
				w.Write(body)
				return
			}

			cw := &cacheWriter{ResponseWriter: w, statusCode: http.StatusOK}
			cw.Header().Set("X-Cache", "MISS")

			next.ServeHTTP(cw, r)

			if cw.statusCode == http.StatusOK {
				if err := rdb.Set(r.Context(), key, cw.buf.Bytes(), ttl).Err(); err != nil {
					logger.Warn("Failed to store response in cache",
						zap.String("key", key),
						zap.Error(err),
					)
				}
			}
		})
	}
}
