package option

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hilthontt/huddle/pkg/apisdk/internal/requestconfig"
)

// RequestOption is an option for the requests made by the huddle API client
// which can be supplied to clients, services, and methods.
type RequestOption = requestconfig.RequestOption

type requestOptionFunc = requestconfig.RequestOptionFunc

// WithBaseURL sets the API root, e.g. "http://localhost:3000/api/".
func WithBaseURL(base string) RequestOption {
	u, err := url.Parse(base)
	if err == nil && u.Path != "" && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return requestOptionFunc(func(r *requestconfig.RequestConfig) error {
		if err != nil {
			return fmt.Errorf("requestoption: WithBaseURL failed to parse url %s", err)
		}
		r.BaseURL = u
		return nil
	})
}

// WithEnvironmentDev points the client at a locally running server.
func WithEnvironmentDev() RequestOption {
	return requestOptionFunc(func(r *requestconfig.RequestConfig) error {
		u, err := url.Parse(requestconfig.DefaultBaseURL)
		if err != nil {
			return err
		}
		r.DefaultBaseURL = u
		return nil
	})
}

func WithHTTPClient(client *http.Client) RequestOption {
	return requestOptionFunc(func(r *requestconfig.RequestConfig) error {
		if client == nil {
			return fmt.Errorf("requestoption: custom http client cannot be nil")
		}
		r.HTTPClient = client
		return nil
	})
}

// WithRequestTimeout bounds each attempt of a request. An attempt that runs out
// of time is retried like a transport failure. Zero disables the timeout.
func WithRequestTimeout(dur time.Duration) RequestOption {
	return requestOptionFunc(func(r *requestconfig.RequestConfig) error {
		r.RequestTimeout = dur
		return nil
	})
}

// WithMaxRetries sets how often 429, 5xx and transport failures are retried.
func WithMaxRetries(retries int) RequestOption {
	if retries < 0 {
		panic("option: cannot have fewer than 0 retries")
	}
	return requestOptionFunc(func(r *requestconfig.RequestConfig) error {
		r.MaxRetries = retries
		return nil
	})
}

func WithHeader(key, value string) RequestOption {
	return requestOptionFunc(func(r *requestconfig.RequestConfig) error {
		r.Request.Header.Set(key, value)
		return nil
	})
}

func WithResponseInto(dst **http.Response) RequestOption {
	return requestOptionFunc(func(r *requestconfig.RequestConfig) error {
		r.ResponseInto = dst
		return nil
	})
}
