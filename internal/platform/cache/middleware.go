package cache

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
)

type captureWriter struct {
	gin.ResponseWriter
	buf *bytes.Buffer
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

// Page is a gin middleware that serves GET responses for a list route from
// the cache. The cache key is the route key plus the raw query so every page
// and filter combination caches independently, and the services drop them
// all by invalidating the route key prefix.
func Page(m *Memory, routeKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := routeKey + "?" + c.Request.URL.RawQuery
		if status, body, ok := m.Get(key); ok {
			c.Data(status, "application/json; charset=utf-8", body)
			c.Abort()
			return
		}

		cw := &captureWriter{ResponseWriter: c.Writer, buf: &bytes.Buffer{}}
		c.Writer = cw
		c.Next()

		if c.Writer.Status() == http.StatusOK {
			m.Set(key, http.StatusOK, cw.buf.Bytes())
		}
	}
}
