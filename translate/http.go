package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Nackshayan/MultilingualChatAssistant/logger"
	"github.com/Nackshayan/MultilingualChatAssistant/resilience"
	"github.com/Nackshayan/MultilingualChatAssistant/types"
)

// HTTPTranslator calls a LibreTranslate-compatible endpoint. Every call is
// retried with jittered backoff and guarded by a circuit breaker so a dead
// provider fails fast instead of stalling the pipeline.
type HTTPTranslator struct {
	url    string
	apiKey string
	http   *http.Client

	retry   *resilience.RetryConfig
	breaker *resilience.CircuitBreaker
	log     *logger.Logger
}

// HTTPOptions tunes the outbound translator.
type HTTPOptions struct {
	APIKey       string
	Timeout      time.Duration
	MaxAttempts  int
	BreakerTrips int
	BreakerReset time.Duration
}

// NewHTTP creates a translator for a LibreTranslate-style endpoint.
func NewHTTP(url string, opts HTTPOptions) (*HTTPTranslator, error) {
	if strings.TrimSpace(url) == "" {
		return nil, errors.New("translate: endpoint url is required")
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 8 * time.Second
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 3
	}
	if opts.BreakerTrips <= 0 {
		opts.BreakerTrips = 5
	}
	if opts.BreakerReset <= 0 {
		opts.BreakerReset = 30 * time.Second
	}

	retry := resilience.DefaultRetryConfig()
	retry.MaxAttempts = opts.MaxAttempts

	return &HTTPTranslator{
		url:     strings.TrimRight(url, "/"),
		apiKey:  opts.APIKey,
		http:    &http.Client{Timeout: opts.Timeout},
		retry:   retry,
		breaker: resilience.NewCircuitBreaker(opts.BreakerTrips, opts.BreakerReset),
		log:     logger.GetLogger().WithField("component", "translator"),
	}, nil
}

type translateReq struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
	APIKey string `json:"api_key,omitempty"`
}

type translateResp struct {
	TranslatedText string `json:"translatedText"`
	Error          string `json:"error,omitempty"`
}

// Translate converts text from one language to another. Pairs that need no
// translation are returned as-is without touching the network.
func (t *HTTPTranslator) Translate(ctx context.Context, text string, from, to types.LanguageCode) (string, error) {
	if strings.TrimSpace(text) == "" || !Needed(from, to) {
		return text, nil
	}

	var out string
	err := resilience.RetryWithConfig(ctx, t.retry, func() error {
		return t.breaker.Execute(func() error {
			translated, err := t.call(ctx, text, from, to)
			if err != nil {
				return err
			}
			out = translated
			return nil
		})
	})
	if err != nil {
		t.log.Warnf("translation %s->%s failed: %v", from, to, err)
		return "", err
	}
	return out, nil
}

func (t *HTTPTranslator) call(ctx context.Context, text string, from, to types.LanguageCode) (string, error) {
	body, _ := json.Marshal(translateReq{
		Q:      text,
		Source: string(from.Normalize()),
		Target: string(to.Normalize()),
		Format: "text",
		APIKey: t.apiKey,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.url+"/translate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("translate: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := t.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("translate: http request: %w", err)
	}
	defer res.Body.Close()

	raw, _ := io.ReadAll(res.Body)
	if res.StatusCode/100 != 2 {
		return "", fmt.Errorf("translate: %d %s", res.StatusCode, strings.TrimSpace(string(raw)))
	}

	var out translateResp
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("translate: decode failed: %w; raw=%s", err, strings.TrimSpace(string(raw)))
	}
	if out.Error != "" {
		return "", errors.New(out.Error)
	}
	if strings.TrimSpace(out.TranslatedText) == "" {
		return "", errors.New("translate: empty result")
	}
	return out.TranslatedText, nil
}

// BreakerState exposes the circuit state for health reporting.
func (t *HTTPTranslator) BreakerState() resilience.State {
	return t.breaker.GetState()
}
