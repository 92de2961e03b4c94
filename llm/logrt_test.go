package llm

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/Nackshayan/MultilingualChatAssistant/logger"
)

type stubRT struct{}

func (stubRT) RoundTrip(req *http.Request) (*http.Response, error) {
	return &http.Response{
		StatusCode: http.StatusOK,
		Status:     "200 OK",
		Proto:      "HTTP/1.1",
		ProtoMajor: 1,
		ProtoMinor: 1,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(`{"ok":true}`)),
		Request:    req,
	}, nil
}

func debugLogger(buf *bytes.Buffer) *logger.Logger {
	log := logger.New()
	log.SetLevel(logger.DEBUG)
	log.SetOutput(buf)
	log.SetIncludeCaller(false)
	return log
}

func TestLoggingRTRedactsAuthorization(t *testing.T) {
	var buf bytes.Buffer
	rt := &loggingRT{base: stubRT{}, log: debugLogger(&buf)}

	req, err := http.NewRequest("POST", "http://llm.local/v1/chat/completions", strings.NewReader(`{"model":"m"}`))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Authorization", "Bearer super-secret-key")
	req.Header.Set("Content-Type", "application/json")

	resp, err := rt.RoundTrip(req)
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != `{"ok":true}` {
		t.Errorf("response body consumed by logging, got %q", body)
	}

	out := buf.String()
	if strings.Contains(out, "super-secret-key") {
		t.Error("bearer token leaked into the debug dump")
	}
	if !strings.Contains(out, "***REDACTED***") {
		t.Error("dump should carry the redaction marker")
	}
}

func TestLoggingRTSilentBelowDebug(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New()
	log.SetLevel(logger.INFO)
	log.SetOutput(&buf)

	rt := &loggingRT{base: stubRT{}, log: log}
	req, err := http.NewRequest("POST", "http://llm.local/v1/chat/completions", strings.NewReader(`{}`))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := rt.RoundTrip(req); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Errorf("nothing should be logged above debug, got %q", buf.String())
	}
}
