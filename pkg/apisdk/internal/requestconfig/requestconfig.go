package requestconfig

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"runtime"
	"strings"
	"time"

	"github.com/hilthontt/huddle/pkg/apisdk/internal"
	"github.com/hilthontt/huddle/pkg/apisdk/internal/apierror"
)

const (
	DefaultBaseURL        = "http://localhost:3000/api/"
	DefaultRequestTimeout = 10 * time.Second
)

// This interface is primarily used to describe an [*http.Client], but also
// supports custom HTTP implementations.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// RequestConfig represents all the state related to one request.
//
// Editing the variables inside RequestConfig directly is unstable api. Prefer
// composing the RequestOption instead if possible.
type RequestConfig struct {
	MaxRetries     int
	RequestTimeout time.Duration
	Context        context.Context
	Request        *http.Request
	BaseURL        *url.URL
	// DefaultBaseURL will be used if BaseURL is not explicitly overridden using
	// WithBaseURL.
	DefaultBaseURL *url.URL
	CustomHTTPDoer HTTPDoer
	HTTPClient     *http.Client
	Middlewares    []middleware
	// If ResponseBodyInto not nil, then we will attempt to deserialize into
	// ResponseBodyInto. If Destination is a []byte, then it will return the body as
	// is.
	ResponseBodyInto any
	// ResponseInto copies the \*http.Response of the corresponding request into the
	// given address
	ResponseInto **http.Response
	Body         io.Reader
}

// middleware is exactly the same type as the Middleware type found in the [option] package,
// but it is redeclared here for circular dependency issues.
type middleware = func(*http.Request, middlewareNext) (*http.Response, error)

// middlewareNext is exactly the same type as the MiddlewareNext type found in the [option] package,
// but it is redeclared here for circular dependency issues.
type middlewareNext = func(*http.Request) (*http.Response, error)

type RequestOption interface {
	Apply(*RequestConfig) error
}

type RequestOptionFunc func(*RequestConfig) error

func (s RequestOptionFunc) Apply(r *RequestConfig) error {
	return s(r)
}

func getDefaultHeaders() map[string]string {
	return map[string]string{
		"User-Agent":   fmt.Sprintf("Huddle/Client %s (%s; %s)", internal.PackageVersion, runtime.GOOS, runtime.GOARCH),
		"Accept":       "application/json",
		"Content-Type": "application/json",
	}
}

func NewRequestConfig(ctx context.Context, method, path string, body any, dst any, opts ...RequestOption) (*RequestConfig, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, path, reader)
	if err != nil {
		return nil, err
	}
	for k, v := range getDefaultHeaders() {
		req.Header.Set(k, v)
	}
	if body == nil {
		req.Header.Del("Content-Type")
	}

	defaultBaseURL, _ := url.Parse(DefaultBaseURL)
	cfg := &RequestConfig{
		RequestTimeout:   DefaultRequestTimeout,
		Context:          ctx,
		Request:          req,
		DefaultBaseURL:   defaultBaseURL,
		HTTPClient:       http.DefaultClient,
		ResponseBodyInto: dst,
		Body:             reader,
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.Apply(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func (cfg *RequestConfig) baseURL() *url.URL {
	if cfg.BaseURL != nil {
		return cfg.BaseURL
	}
	return cfg.DefaultBaseURL
}

// Execute resolves the request against the base URL, runs it through the
// middleware chain and decodes the response into ResponseBodyInto.
func (cfg *RequestConfig) Execute() error {
	base := cfg.baseURL()
	if !strings.HasSuffix(base.Path, "/") {
		u := *base
		u.Path += "/"
		base = &u
	}

	ref := *cfg.Request.URL
	ref.Path = strings.TrimLeft(ref.Path, "/")
	cfg.Request.URL = base.ResolveReference(&ref)
	cfg.Request.Host = cfg.Request.URL.Host

	var doer HTTPDoer = cfg.HTTPClient
	if cfg.CustomHTTPDoer != nil {
		doer = cfg.CustomHTTPDoer
	}

	handler := doer.Do
	for i := len(cfg.Middlewares) - 1; i >= 0; i-- {
		mw, next := cfg.Middlewares[i], handler
		handler = func(req *http.Request) (*http.Response, error) {
			return mw(req, next)
		}
	}

	var (
		res    *http.Response
		err    error
		cancel context.CancelFunc
	)
	for attempt := 0; ; attempt++ {
		ctx := cfg.Context
		cancel = func() {}
		if cfg.RequestTimeout > 0 {
			ctx, cancel = context.WithTimeout(ctx, cfg.RequestTimeout)
		}

		req := cfg.Request.Clone(ctx)
		if seeker, ok := cfg.Body.(io.Seeker); ok {
			if _, err := seeker.Seek(0, io.SeekStart); err != nil {
				cancel()
				return err
			}
			req.Body = io.NopCloser(cfg.Body)
		}

		res, err = handler(req)
		attemptTimedOut := err != nil && ctx.Err() != nil && cfg.Context.Err() == nil
		if !(shouldRetry(res, err) || attemptTimedOut) || attempt >= cfg.MaxRetries || cfg.Context.Err() != nil {
			break
		}
		if res != nil {
			res.Body.Close()
		}
		cancel()

		select {
		case <-cfg.Context.Done():
			return cfg.Context.Err()
		case <-time.After(retryDelay(attempt)):
		}
	}
	defer cancel()
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if cfg.ResponseInto != nil {
		*cfg.ResponseInto = res
	}

	if res.StatusCode >= 400 {
		apiErr := &apierror.Error{
			StatusCode: res.StatusCode,
			Request:    cfg.Request,
			Response:   res,
		}
		data, _ := io.ReadAll(res.Body)
		_ = json.Unmarshal(data, apiErr)
		return apiErr
	}

	if cfg.ResponseBodyInto == nil {
		_, _ = io.Copy(io.Discard, res.Body)
		return nil
	}

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("error reading response body: %w", err)
	}

	switch dst := cfg.ResponseBodyInto.(type) {
	case *[]byte:
		*dst = data
		return nil
	}

	if err := json.Unmarshal(data, cfg.ResponseBodyInto); err != nil {
		return fmt.Errorf("error parsing response json: %w", err)
	}
	return nil
}

func shouldRetry(res *http.Response, err error) bool {
	if err != nil {
		return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
	}
	return res.StatusCode == http.StatusTooManyRequests || res.StatusCode >= 500
}

func retryDelay(attempt int) time.Duration {
	delay := 100 * time.Millisecond << attempt
	if delay > 2*time.Second {
		delay = 2 * time.Second
	}
	return delay
}

func ExecuteNewRequest(ctx context.Context, method, path string, body any, dst any, opts ...RequestOption) error {
	cfg, err := NewRequestConfig(ctx, method, path, body, dst, opts...)
	if err != nil {
		return err
	}
	return cfg.Execute()
}
