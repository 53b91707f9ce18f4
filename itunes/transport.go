package itunes

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"github.com/xeptore/flaw/v8"

	"github.com/xeptore/itms/config"
	"github.com/xeptore/itms/constant"
	"github.com/xeptore/itms/errutil"
	"github.com/xeptore/itms/httputil"
	"github.com/xeptore/itms/log"
)

// Transport performs one GET per logical fetch and hands back the raw
// response bytes together with the response headers the decode pipeline
// needs. Implementations own timeout and retry policy; the core on top of
// them retries nothing.
type Transport interface {
	Get(ctx context.Context, reqURL string) (body []byte, header http.Header, err error)
}

const (
	// acceptEncoding advertises gzip plus the store's cipher token so it
	// serves the encrypted catalog documents.
	acceptEncoding = "gzip, x-aes-cbc"
	// storeCookie asserts the verified-country flag the store checks
	// before serving full catalog pages.
	storeCookie = "countryVerified=1"
)

type HTTPTransport struct {
	client         *http.Client
	acceptLanguage string
	logger         zerolog.Logger
}

func NewHTTPTransport(acceptLanguage string, logger zerolog.Logger) *HTTPTransport {
	//nolint:exhaustruct
	return &HTTPTransport{
		client:         &http.Client{Timeout: config.PageRequestTimeout},
		acceptLanguage: acceptLanguage,
		logger:         logger,
	}
}

func (t *HTTPTransport) Get(ctx context.Context, reqURL string) ([]byte, http.Header, error) {
	var (
		body   []byte
		header http.Header
	)
	op := func() error {
		b, h, err := t.get(ctx, reqURL)
		if nil != err {
			return err
		}
		body, header = b, h
		return nil
	}
	notify := func(err error, wait time.Duration) {
		t.logger.Warn().Func(log.Flaw(err)).Str("url", reqURL).Dur("wait", wait).Msg("Retrying store request")
	}
	if err := backoff.RetryNotify(op, backoff.WithContext(newBackoff(30*time.Second), ctx), notify); nil != err {
		return nil, nil, err
	}
	return body, header, nil
}

func (t *HTTPTransport) get(ctx context.Context, reqURL string) (body []byte, header http.Header, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if nil != err {
		if errutil.IsContext(ctx) {
			return nil, nil, backoff.Permanent(ctx.Err())
		}
		flawP := flaw.P{"url": reqURL, "err_debug_tree": errutil.Tree(err).FlawP()}
		return nil, nil, backoff.Permanent(flaw.From(fmt.Errorf("failed to create store page request: %v", err)).Append(flawP))
	}
	req.Header.Set("User-Agent", constant.UserAgent)
	req.Header.Set("Accept-Language", t.acceptLanguage)
	req.Header.Set("Accept-Encoding", acceptEncoding)
	req.Header.Set("Cookie", storeCookie)

	resp, err := t.client.Do(req)
	if nil != err {
		switch {
		case errutil.IsContext(ctx):
			return nil, nil, backoff.Permanent(ctx.Err())
		case errors.Is(err, context.DeadlineExceeded):
			return nil, nil, backoff.Permanent(context.DeadlineExceeded)
		default:
			// Network errors are worth another attempt.
			return nil, nil, fmt.Errorf("failed to issue store page request: %v", err)
		}
	}
	defer func() {
		if closeErr := resp.Body.Close(); nil != closeErr {
			flawP := flaw.P{"url": reqURL, "err_debug_tree": errutil.Tree(closeErr).FlawP()}
			closeErr = flaw.From(fmt.Errorf("failed to close response body: %v", closeErr)).Append(flawP)
			if nil == err {
				err = backoff.Permanent(closeErr)
			}
		}
	}()

	switch code := resp.StatusCode; {
	case code >= 200 && code < 300:
	case code >= 500:
		return nil, nil, &TransportError{URL: reqURL, Status: code}
	default:
		return nil, nil, backoff.Permanent(&TransportError{URL: reqURL, Status: code})
	}

	// Catalog pages always carry a document; an empty body is a failure.
	respBody, err := httputil.ReadResponseBody(ctx, resp)
	if nil != err {
		if errutil.IsContext(ctx) {
			return nil, nil, backoff.Permanent(ctx.Err())
		}
		flawP := flaw.P{
			"url":            reqURL,
			"response":       errutil.HTTPResponseFlawPayload(resp),
			"err_debug_tree": errutil.Tree(err).FlawP(),
		}
		return nil, nil, backoff.Permanent(flaw.From(fmt.Errorf("failed to read store page response body: %v", err)).Append(flawP))
	}
	return respBody, resp.Header, nil
}

func newBackoff(timeout time.Duration) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.Multiplier = 1.1
	b.MaxElapsedTime = timeout
	b.MaxInterval = 10 * time.Second
	return b
}
