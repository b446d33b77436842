package messages

type createMessageRequest struct {
	Message  string `json:"message" example:"hello everyone"`
	Username string `json:"username" example:"alice"`
}
