package session

import (
	"context"

	"github.com/hilthontt/huddle/pkg/apisdk"
)

type Message = apisdk.Message

// API is the subset of the huddle HTTP API a session talks to.
type API interface {
	CreateRoom(ctx context.Context, username string) (string, error)
	JoinRoom(ctx context.Context, roomID, username string) error
	LeaveRoom(ctx context.Context, roomID, username string) error
	PostMessage(ctx context.Context, roomID, text, username string) (Message, error)
	ListMessages(ctx context.Context, roomID, cursor string) ([]Message, error)
}

type sdkAPI struct {
	client *apisdk.Client
}

// NewAPI adapts an SDK client to API.
func NewAPI(client *apisdk.Client) API {
	return &sdkAPI{client: client}
}

func (a *sdkAPI) CreateRoom(ctx context.Context, username string) (string, error) {
	res, err := a.client.Room.New(ctx, apisdk.RoomNewParams{Username: username})
	if err != nil {
		return "", err
	}
	return res.RoomID, nil
}

func (a *sdkAPI) JoinRoom(ctx context.Context, roomID, username string) error {
	return a.client.Room.Join(ctx, apisdk.RoomJoinParams{RoomID: roomID, Username: username})
}

func (a *sdkAPI) LeaveRoom(ctx context.Context, roomID, username string) error {
	return a.client.Room.Leave(ctx, roomID, apisdk.RoomLeaveParams{Username: username})
}

func (a *sdkAPI) PostMessage(ctx context.Context, roomID, text, username string) (Message, error) {
	msg, err := a.client.Message.New(ctx, roomID, apisdk.MessageNewParams{Message: text, Username: username})
	if err != nil {
		return Message{}, err
	}
	return *msg, nil
}

func (a *sdkAPI) ListMessages(ctx context.Context, roomID, cursor string) ([]Message, error) {
	return a.client.Message.List(ctx, roomID, apisdk.MessageListParams{LastMessageID: cursor})
}
