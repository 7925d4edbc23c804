package middleware

import (
	"bytes"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// PageCache caches whole GET responses in Redis. It is only mounted on the
// public informational pages (/about, /services): every other page varies
// by session and must not be cached. A nil Redis client disables caching.
func PageCache(rdb *redis.Client, ttl time.Duration) echo.MiddlewareFunc {
	if rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method != http.MethodGet {
				return next(c)
			}
			key := "page:" + c.Request().URL.Path

			if body, err := rdb.Get(c.Request().Context(), key).Bytes(); err == nil {
				return c.HTMLBlob(http.StatusOK, body)
			}

			// Capture the rendered body while streaming it to the client.
			res := c.Response()
			buf := &bytes.Buffer{}
			orig := res.Writer
			res.Writer = &teeWriter{ResponseWriter: orig, buf: buf}
			err := next(c)
			res.Writer = orig
			if err != nil {
				return err
			}
			if res.Status == http.StatusOK && buf.Len() > 0 {
				// Best effort; a failed cache write is invisible to the user.
				_ = rdb.Set(c.Request().Context(), key, buf.Bytes(), ttl).Err()
			}
			return nil
		}
	}
}

type teeWriter struct {
	http.ResponseWriter
	buf *bytes.Buffer
}

func (w *teeWriter) Write(p []byte) (int, error) {
	w.buf.Write(p)
	return w.ResponseWriter.Write(p)
}
