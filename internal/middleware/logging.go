package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// maxLoggedBody caps how many bytes of a request or response body are logged.
const maxLoggedBody = 16 << 10

// skipLogging lists path prefixes that are never logged.
var skipLogging = []string{"/health"}

type bodyLogWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *bodyLogWriter) Write(b []byte) (int, error) {
	w.capture(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyLogWriter) WriteString(s string) (int, error) {
	w.capture([]byte(s))
	return w.ResponseWriter.WriteString(s)
}

func (w *bodyLogWriter) capture(b []byte) {
	if room := maxLoggedBody - w.body.Len(); room > 0 {
		if len(b) > room {
			b = b[:room]
		}
		w.body.Write(b)
	}
}

// Logging writes one entry for the incoming request and one for the
// response, bodies included. 4xx responses log at warn, 5xx at error.
func Logging(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, prefix := range skipLogging {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		start := time.Now()
		requestID := GetRequestID(c)

		var reqBody []byte
		if c.Request.Body != nil {
			raw, err := io.ReadAll(c.Request.Body)
			if err == nil {
				reqBody = raw
			}
			c.Request.Body = io.NopCloser(bytes.NewReader(raw))
		}

		reqFields := []zap.Field{
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", c.Request.URL.RawQuery),
			zap.String("client_ip", c.ClientIP()),
			zap.String("content_type", c.ContentType()),
		}
		if len(bytes.TrimSpace(reqBody)) > 0 {
			reqFields = append(reqFields, zap.String("body", formatBody(reqBody)))
		}
		log.Info("request", reqFields...)

		writer := &bodyLogWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = writer

		c.Next()

		status := c.Writer.Status()
		resFields := []zap.Field{
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", time.Since(start)),
			zap.String("content_type", c.Writer.Header().Get("Content-Type")),
		}
		if writer.body.Len() > 0 {
			resFields = append(resFields, zap.String("body", formatBody(writer.body.Bytes())))
		}
		if len(c.Errors) > 0 {
			resFields = append(resFields, zap.String("errors", c.Errors.String()))
		}

		log.Log(levelFor(status), "response", resFields...)
	}
}

func levelFor(status int) zapcore.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return zapcore.ErrorLevel
	case status >= http.StatusBadRequest:
		return zapcore.WarnLevel
	default:
		return zapcore.InfoLevel
	}
}

// formatBody compacts JSON bodies and returns anything else verbatim,
// truncated to maxLoggedBody.
func formatBody(body []byte) string {
	if len(body) > maxLoggedBody {
		body = body[:maxLoggedBody]
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, body); err == nil {
		return buf.String()
	}
	return string(body)
}
