package apisdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"slices"

	"github.com/hilthontt/huddle/pkg/apisdk/internal/requestconfig"
	"github.com/hilthontt/huddle/pkg/apisdk/option"
)

type MessageService struct {
	Options []option.RequestOption
}

func NewMessageService(opts ...option.RequestOption) *MessageService {
	m := &MessageService{opts}
	return m
}

func (m *MessageService) New(ctx context.Context, roomID string, body MessageNewParams, opts ...option.RequestOption) (*Message, error) {
	opts = slices.Concat(m.Options, opts)
	if roomID == "" {
		return nil, ErrMissingIDParameter
	}

	path := fmt.Sprintf("rooms/%s/messages", url.PathEscape(roomID))
	res := &Message{}
	err := requestconfig.ExecuteNewRequest(ctx, http.MethodPost, path, body, res, opts...)
	if err != nil {
		return nil, err
	}

	return res, nil
}

// List returns the messages after params.LastMessageID, or the whole log when it is empty.
func (m *MessageService) List(ctx context.Context, roomID string, params MessageListParams, opts ...option.RequestOption) ([]Message, error) {
	opts = slices.Concat(m.Options, opts)
	if roomID == "" {
		return nil, ErrMissingIDParameter
	}

	path := fmt.Sprintf("rooms/%s/messages", url.PathEscape(roomID))
	if q := params.URLQuery().Encode(); q != "" {
		path += "?" + q
	}

	res := []Message{}
	err := requestconfig.ExecuteNewRequest(ctx, http.MethodGet, path, nil, &res, opts...)
	if err != nil {
		return nil, err
	}

	return res, nil
}

type MessageNewParams struct {
	Message  string `json:"message"`
	Username string `json:"username"`
}

type MessageListParams struct {
	LastMessageID string
}

func (p MessageListParams) URLQuery() url.Values {
	q := url.Values{}
	if p.LastMessageID != "" {
		q.Set("lastMessageId", p.LastMessageID)
	}
	return q
}

type Message struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Username  string `json:"username"`
	Timestamp string `json:"timestamp"`
}
