package apisdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"time"

	"github.com/hilthontt/huddle/pkg/apisdk/internal/requestconfig"
	"github.com/hilthontt/huddle/pkg/apisdk/option"
)

type RoomService struct {
	Options []option.RequestOption
}

func NewRoomService(opts ...option.RequestOption) *RoomService {
	r := &RoomService{opts}
	return r
}

// New creates a room with the caller as its only member.
func (r *RoomService) New(ctx context.Context, body RoomNewParams, opts ...option.RequestOption) (*RoomNewResponse, error) {
	opts = slices.Concat(r.Options, opts)
	path := "rooms"

	res := &RoomNewResponse{}
	err := requestconfig.ExecuteNewRequest(ctx, http.MethodPost, path, body, res, opts...)
	if err != nil {
		return nil, err
	}

	return res, nil
}

func (r *RoomService) Join(ctx context.Context, body RoomJoinParams, opts ...option.RequestOption) error {
	opts = slices.Concat(r.Options, opts)
	if body.RoomID == "" {
		return ErrMissingIDParameter
	}

	path := "rooms/join"
	err := requestconfig.ExecuteNewRequest(ctx, http.MethodPost, path, body, nil, opts...)

	return err
}

func (r *RoomService) Leave(ctx context.Context, id string, body RoomLeaveParams, opts ...option.RequestOption) error {
	opts = slices.Concat(r.Options, opts)
	if id == "" {
		return ErrMissingIDParameter
	}

	path := fmt.Sprintf("rooms/%s/leave", url.PathEscape(id))
	err := requestconfig.ExecuteNewRequest(ctx, http.MethodPost, path, body, nil, opts...)

	return err
}

func (r *RoomService) Get(ctx context.Context, id string, opts ...option.RequestOption) (*RoomInfo, error) {
	opts = slices.Concat(r.Options, opts)
	if id == "" {
		return nil, ErrMissingIDParameter
	}

	path := fmt.Sprintf("rooms/%s", url.PathEscape(id))
	res := &RoomInfo{}
	err := requestconfig.ExecuteNewRequest(ctx, http.MethodGet, path, nil, res, opts...)
	if err != nil {
		return nil, err
	}

	return res, nil
}

type RoomNewParams struct {
	Username string `json:"username"`
}

type RoomNewResponse struct {
	RoomID string `json:"roomId"`
}

type RoomJoinParams struct {
	RoomID   string `json:"roomId"`
	Username string `json:"username"`
}

type RoomLeaveParams struct {
	Username string `json:"username"`
}

type RoomInfo struct {
	ID           string    `json:"id"`
	Members      []string  `json:"members"`
	MessageCount int       `json:"messageCount"`
	CreatedAt    time.Time `json:"createdAt"`
	LastActivity time.Time `json:"lastActivity"`
	ExpiresAt    time.Time `json:"expiresAt"`
}
