package vivi

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestIsRateLimitError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"api error 429", &APIError{StatusCode: 429}, true},
		{"api error 429 permanent", &APIError{StatusCode: 429, IsPermanent: true}, false},
		{"wrapped api error", fmt.Errorf("chat: %w", &APIError{StatusCode: 429}), true},
		{"message 429", errors.New("got 429 from upstream"), true},
		{"message rate limit", errors.New("rate limit exceeded"), true},
		{"unrelated", errors.New("connection refused"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsRateLimitError(tt.err); got != tt.want {
				t.Errorf("IsRateLimitError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsQuotaError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"permanent api error", &APIError{IsPermanent: true}, true},
		{"insufficient quota code", &APIError{Code: "insufficient_quota"}, true},
		{"message quota", errors.New("monthly quota exhausted"), true},
		{"message billing", errors.New("billing hard limit reached"), true},
		{"unrelated", errors.New("timeout"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsQuotaError(tt.err); got != tt.want {
				t.Errorf("IsQuotaError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtractAPIError(t *testing.T) {
	t.Parallel()

	err := errors.New(`429 {"message":"Too many requests","type":"rate_limit_error","code":"rate_limited"}`)
	apiErr := ExtractAPIError(err)
	if apiErr == nil {
		t.Fatal("ExtractAPIError returned nil for 429 error")
	}
	if apiErr.StatusCode != 429 {
		t.Errorf("StatusCode = %d, want 429", apiErr.StatusCode)
	}
	if apiErr.Message != "Too many requests" {
		t.Errorf("Message = %q", apiErr.Message)
	}
	if apiErr.RetryAfter == nil || *apiErr.RetryAfter != 60*time.Second {
		t.Errorf("RetryAfter = %v, want 60s", apiErr.RetryAfter)
	}

	quotaErr := errors.New(`429 {"message":"Quota exceeded","type":"insufficient_quota","code":"insufficient_quota"}`)
	apiErr = ExtractAPIError(quotaErr)
	if apiErr == nil || !apiErr.IsPermanent {
		t.Errorf("quota error not marked permanent: %+v", apiErr)
	}
	if apiErr.RetryAfter == nil || *apiErr.RetryAfter != time.Hour {
		t.Errorf("quota RetryAfter = %v, want 1h", apiErr.RetryAfter)
	}

	if got := ExtractAPIError(errors.New("plain failure")); got != nil {
		t.Errorf("ExtractAPIError(plain) = %+v, want nil", got)
	}
	if got := ExtractAPIError(nil); got != nil {
		t.Errorf("ExtractAPIError(nil) = %+v, want nil", got)
	}
}

func TestGetRetryDelay(t *testing.T) {
	t.Parallel()

	rateErr := &APIError{StatusCode: 429}
	if d := GetRetryDelay(rateErr, 0); d != 60*time.Second {
		t.Errorf("rate limit attempt 0 delay = %v, want 60s", d)
	}
	if d := GetRetryDelay(rateErr, 10); d != 15*time.Minute {
		t.Errorf("rate limit attempt 10 delay = %v, want cap 15m", d)
	}

	quotaErr := &APIError{IsPermanent: true}
	if d := GetRetryDelay(quotaErr, 0); d != time.Hour {
		t.Errorf("quota attempt 0 delay = %v, want 1h", d)
	}
	if d := GetRetryDelay(quotaErr, 20); d != 24*time.Hour {
		t.Errorf("quota attempt 20 delay = %v, want cap 24h", d)
	}

	generic := errors.New("boom")
	if d := GetRetryDelay(generic, 0); d != 5*time.Second {
		t.Errorf("generic attempt 0 delay = %v, want 5s", d)
	}
	if d := GetRetryDelay(generic, 1); d != 10*time.Second {
		t.Errorf("generic attempt 1 delay = %v, want 10s", d)
	}
	if d := GetRetryDelay(generic, 15); d != 5*time.Minute {
		t.Errorf("generic attempt 15 delay = %v, want cap 5m", d)
	}
}

func TestProviderRegistry(t *testing.T) {
	t.Parallel()
	r := NewProviderRegistry()
	RegisterOpenAI(r)

	if _, err := r.GetProvider("openai", map[string]string{"api_key": "sk-test"}); err != nil {
		t.Errorf("GetProvider(openai): %v", err)
	}
	if _, err := r.GetProvider("openai", map[string]string{}); err == nil {
		t.Error("GetProvider without api_key should fail")
	}
	if _, err := r.GetProvider("missing", nil); err == nil {
		t.Error("GetProvider(missing) should fail")
	}
	var notFound *ErrProviderNotFound
	_, err := r.GetProvider("missing", nil)
	if !errors.As(err, &notFound) {
		t.Errorf("err = %T, want *ErrProviderNotFound", err)
	}
}
