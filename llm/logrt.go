package llm

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httputil"
	"regexp"

	"github.com/Nackshayan/MultilingualChatAssistant/logger"
)

// loggingRT dumps request/response pairs at debug level with the bearer token
// redacted. Enabled through LLM_DEBUG_HTTP.
type loggingRT struct {
	base http.RoundTripper
	log  *logger.Logger
}

var authRe = regexp.MustCompile(`(?i)Authorization:\s*Bearer\s+[A-Za-z0-9\-\._~+/=]+`)

func newLoggingRT(base http.RoundTripper) *loggingRT {
	return &loggingRT{
		base: base,
		log:  logger.GetLogger().WithField("component", "llm-http"),
	}
}

func (l *loggingRT) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Body != nil {
		b, _ := io.ReadAll(req.Body)
		req.Body = io.NopCloser(bytes.NewReader(b))
		req.GetBody = func() (io.ReadCloser, error) { return io.NopCloser(bytes.NewReader(b)), nil }
		if dump, err := httputil.DumpRequestOut(req, true); err == nil {
			safe := authRe.ReplaceAll(dump, []byte("Authorization: Bearer ***REDACTED***"))
			l.log.WithFields(map[string]interface{}{
				"method": req.Method,
				"url":    req.URL.String(),
			}).Debugf("outbound request:\n%s", safe)
		}
	}

	resp, err := l.base.RoundTrip(req)
	if err != nil {
		return resp, err
	}

	if resp != nil && resp.Body != nil {
		b, _ := io.ReadAll(resp.Body)
		resp.Body = io.NopCloser(bytes.NewReader(b))
		if dump, derr := httputil.DumpResponse(resp, true); derr == nil {
			if len(dump) > 4096 {
				dump = append(dump[:4096], []byte("\n... (truncated) ...")...)
			}
			l.log.WithFields(map[string]interface{}{
				"url":    req.URL.String(),
				"status": resp.StatusCode,
			}).Debugf("inbound response:\n%s", dump)
		}
	}
	return resp, nil
}
