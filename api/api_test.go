package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Nackshayan/MultilingualChatAssistant/reply"
	"github.com/Nackshayan/MultilingualChatAssistant/types"
)

func testServer() *Server {
	return NewServer(0, reply.NewEngine(), nil)
}

func TestHandleReplyJSON(t *testing.T) {
	srv := testServer()

	body := `{"incomingText": "hello there", "userReply": "thanks a lot", "userLang": "en"}`
	req := httptest.NewRequest(http.MethodPost, "/api/reply", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.handleReply(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var out struct {
		RequestID string             `json:"requestId"`
		Result    *types.ReplyResult `json:"result"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if out.RequestID == "" {
		t.Error("missing request id")
	}
	if out.Result == nil || out.Result.Intent != types.IntentThanks {
		t.Errorf("unexpected result %+v", out.Result)
	}
}

func TestHandleReplyPlainTextBody(t *testing.T) {
	srv := testServer()

	req := httptest.NewRequest(http.MethodPost, "/api/reply", strings.NewReader("thanks a lot"))
	rec := httptest.NewRecorder()
	srv.handleReply(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var out struct {
		Result *types.ReplyResult `json:"result"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.Result.Intent != types.IntentThanks {
		t.Errorf("plain body should be treated as the draft reply, intent = %q", out.Result.Intent)
	}
}

func TestHandleReplyMethodNotAllowed(t *testing.T) {
	srv := testServer()

	req := httptest.NewRequest(http.MethodGet, "/api/reply", nil)
	rec := httptest.NewRecorder()
	srv.handleReply(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestHandleIntent(t *testing.T) {
	srv := testServer()

	for _, body := range []string{`{"text": "gracias amigo"}`, "gracias amigo"} {
		req := httptest.NewRequest(http.MethodPost, "/api/intent", strings.NewReader(body))
		rec := httptest.NewRecorder()
		srv.handleIntent(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		var out struct {
			Intent types.Intent `json:"intent"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
			t.Fatal(err)
		}
		if out.Intent != types.IntentThanks {
			t.Errorf("body %q: intent = %q, want thanks", body, out.Intent)
		}
	}
}

func TestHandleTone(t *testing.T) {
	srv := testServer()

	req := httptest.NewRequest(http.MethodPost, "/api/tone", strings.NewReader(`{"text": "I AM SO ANGRY RIGHT NOW"}`))
	rec := httptest.NewRecorder()
	srv.handleTone(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var out struct {
		Tone types.Tone `json:"tone"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.Tone != types.ToneAngry {
		t.Errorf("tone = %q, want angry", out.Tone)
	}
}

func TestHandleHealth(t *testing.T) {
	srv := testServer()

	rec := httptest.NewRecorder()
	srv.handleHealth(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Errorf("unexpected body %s", rec.Body.String())
	}
}

func TestCORSPreflight(t *testing.T) {
	handler := corsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("preflight should not reach the handler")
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/reply", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS headers")
	}
}
