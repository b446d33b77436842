package rooms

type createRoomRequest struct {
	Username string `json:"username" example:"alice"`
}

type createRoomResponse struct {
	RoomID string `json:"roomId" example:"3f1c2d9e-8b4a-4f6e-9c1d-2a7b5e0f4c3d"`
}

type joinRoomRequest struct {
	RoomID   string `json:"roomId" example:"3f1c2d9e-8b4a-4f6e-9c1d-2a7b5e0f4c3d"`
	Username string `json:"username" example:"bob"`
}

type leaveRoomRequest struct {
	Username string `json:"username" example:"bob"`
}

type successResponse struct {
	Success bool `json:"success" example:"true"`
}
