package apisdk

import (
	"context"
	"net/http"
	"os"
	"slices"

	"github.com/hilthontt/huddle/pkg/apisdk/internal/requestconfig"
	"github.com/hilthontt/huddle/pkg/apisdk/option"
)

type Client struct {
	Options []option.RequestOption
	Room    *RoomService
	Message *MessageService
	Health  *HealthService
}

// DefaultClientOptions reads HUDDLE_BASE_URL from the environment.
func DefaultClientOptions() []option.RequestOption {
	defaults := []option.RequestOption{
		option.WithEnvironmentDev(),
	}
	if o, ok := os.LookupEnv("HUDDLE_BASE_URL"); ok {
		defaults = append(defaults, option.WithBaseURL(o))
	}
	return defaults
}

func NewClient(opts ...option.RequestOption) *Client {
	opts = append(DefaultClientOptions(), opts...)

	r := &Client{
		Options: opts,
		Room:    NewRoomService(opts...),
		Message: NewMessageService(opts...),
		Health:  NewHealthService(opts...),
	}

	return r
}

func (c *Client) Execute(ctx context.Context, method, path string, params, res any, opts ...option.RequestOption) error {
	opts = slices.Concat(c.Options, opts)
	return requestconfig.ExecuteNewRequest(ctx, method, path, params, res, opts...)
}

func (c *Client) Get(ctx context.Context, path string, params, res any, opts ...option.RequestOption) error {
	return c.Execute(ctx, http.MethodGet, path, params, res, opts...)
}

func (c *Client) Post(ctx context.Context, path string, params, res any, opts ...option.RequestOption) error {
	return c.Execute(ctx, http.MethodPost, path, params, res, opts...)
}
