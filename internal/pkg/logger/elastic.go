package logger

import (
	"bytes"
	"io"
	log "log/slog"
	"net/http"
	"time"
)

const esBodyLimit = 1000

// ESTransport 记录 Elasticsearch 请求耗时与请求体
type ESTransport struct {
	Transport http.RoundTripper
}

func (t *ESTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	var reqBody []byte
	if req.Body != nil {
		reqBody, _ = io.ReadAll(req.Body)
		req.Body = io.NopCloser(bytes.NewBuffer(reqBody))
	}

	resp, err := t.Transport.RoundTrip(req)
	elapsed := time.Since(start)

	fields := []any{
		log.String("method", req.Method),
		log.String("path", req.URL.Path),
		log.Duration("latency", elapsed),
		log.String("req_body", truncate(string(reqBody))),
	}

	if err != nil {
		log.ErrorContext(req.Context(), "ES_QUERY_ERROR", append(fields, log.Any("err", err))...)
		return nil, err
	}
	fields = append(fields, log.Int("status", resp.StatusCode))

	switch {
	case resp.StatusCode >= 500:
		log.ErrorContext(req.Context(), "ES_QUERY_FAILED", fields...)
	case elapsed > 500*time.Millisecond:
		log.WarnContext(req.Context(), "ES_QUERY_SLOW", fields...)
	default:
		log.DebugContext(req.Context(), "ES_QUERY", fields...)
	}

	return resp, nil
}

func truncate(s string) string {
	if len(s) > esBodyLimit {
		return s[:esBodyLimit] + "...[truncated]"
	}
	return s
}
