// Package moderation screens user-submitted text through an external
// profanity classifier before it reaches storage.
//
// The classifier is a strict synchronous dependency of every write path:
// if it cannot be reached or answers nonsense, the write fails as a whole.
// There is deliberately no retry and no circuit breaker — skipping
// moderation silently would let unscreened content through, which is worse
// than refusing the write. A per-call timeout keeps a slow classifier from
// pinning requests forever.
package moderation

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sakif/qna-service/internal/apperror"
)

// Verdict is the classifier's binary judgment on one piece of text.
type Verdict string

const (
	VerdictClean             Verdict = "clean"
	VerdictContainsProfanity Verdict = "contains_profanity"
)

// Result is the outcome of screening one text field. It lives only for the
// duration of the write request that triggered it.
type Result struct {
	Original string
	Censored string
	Verdict  Verdict
}

// Text returns the string to persist: the original text when clean, the
// classifier's censored variant otherwise. The write always proceeds with
// sanitized content — profanity degrades the content, it does not reject
// the request.
func (r Result) Text() string {
	if r.Verdict == VerdictContainsProfanity {
		return r.Censored
	}
	return r.Original
}

// DefaultTimeout bounds each classifier call.
const DefaultTimeout = 10 * time.Second

// Client calls the bad-words classification API.
//
// Endpoint and API key are fixed at construction and read-only afterwards;
// the client is safe for concurrent use from every request goroutine.
type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
	logger   *slog.Logger
}

// NewClient creates a classifier client. endpoint is the full URL of the
// check operation (e.g. "https://api.apilayer.com/bad_words"); apiKey is
// sent in the provider's apikey header on every call.
func NewClient(endpoint, apiKey string, logger *slog.Logger) *Client {
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		http:     &http.Client{Timeout: DefaultTimeout},
		logger:   logger,
	}
}

// checkResponse is the portion of the classifier's reply we care about.
type checkResponse struct {
	Content         string `json:"content"`
	BadWordsTotal   int    `json:"bad_words_total"`
	CensoredContent string `json:"censored_content"`
}

// Check screens one text field, blocking the write path until the
// classifier answers.
//
// Any transport failure, non-200 status or undecodable body is returned as
// apperror.ThirdParty; the caller must fail the whole write. The ctx is the
// request context, so a client disconnect abandons the call.
func (c *Client) Check(ctx context.Context, text string) (Result, error) {
	url := c.endpoint + "?censor_character=*"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(text))
	if err != nil {
		return Result{}, apperror.ThirdParty(fmt.Errorf("moderation: building request: %w", err))
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Content-Type", "text/plain")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("classifier unreachable", slog.String("error", err.Error()))
		return Result{}, apperror.ThirdParty(fmt.Errorf("moderation: calling classifier: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("classifier returned non-200",
			slog.Int("status", resp.StatusCode),
		)
		return Result{}, apperror.ThirdParty(fmt.Errorf("moderation: classifier status %d", resp.StatusCode))
	}

	var body checkResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		c.logger.Error("classifier response undecodable", slog.String("error", err.Error()))
		return Result{}, apperror.ThirdParty(fmt.Errorf("moderation: decoding classifier response: %w", err))
	}

	verdict := VerdictClean
	if body.BadWordsTotal > 0 {
		verdict = VerdictContainsProfanity
	}

	return Result{
		Original: text,
		Censored: body.CensoredContent,
		Verdict:  verdict,
	}, nil
}
