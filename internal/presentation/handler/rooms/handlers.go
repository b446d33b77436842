package rooms

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hilthontt/huddle/internal/domain"
	"github.com/hilthontt/huddle/internal/infrastructure/json"
	"github.com/hilthontt/huddle/internal/infrastructure/logging"
)

type Handler struct {
	roomRepository domain.RoomRepository
	logger         logging.Logger
}

func NewHandler(roomRepository domain.RoomRepository, logger logging.Logger) *Handler {
	return &Handler{
		roomRepository: roomRepository,
		logger:         logger,
	}
}

// CreateRoomHandler godoc
// @Summary      Create a new chat room
// @Description  Creates an empty room with the caller as its only member and returns the room id
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Param        request body createRoomRequest true "Room creation parameters"
// @Success      200 {object} createRoomResponse "Room created successfully"
// @Failure      400 {object} json.ErrorResponse "Malformed request body"
// @Failure      500 {object} json.ErrorResponse "Internal server error"
// @Router       /rooms [post]
func (h *Handler) CreateRoomHandler(w http.ResponseWriter, r *http.Request) {
	var req createRoomRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteBadRequestError(w, err)
		return
	}

	info, err := h.roomRepository.Create(r.Context(), req.Username)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	json.Write(w, http.StatusOK, createRoomResponse{RoomID: info.ID})
}

// JoinRoomHandler godoc
// @Summary      Join a chat room
// @Description  Adds the username to the room's members. Joining twice is a no-op.
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Param        request body joinRoomRequest true "Room and username"
// @Success      200 {object} successResponse
// @Failure      400 {object} json.ErrorResponse "Malformed request body"
// @Failure      404 {object} json.ErrorResponse "Room not found"
// @Router       /rooms/join [post]
func (h *Handler) JoinRoomHandler(w http.ResponseWriter, r *http.Request) {
	var req joinRoomRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteBadRequestError(w, err)
		return
	}

	if err := h.roomRepository.Join(r.Context(), req.RoomID, req.Username); err != nil {
		h.writeError(w, r, err)
		return
	}

	json.Write(w, http.StatusOK, successResponse{Success: true})
}

// LeaveRoomHandler godoc
// @Summary      Leave a chat room
// @Description  Removes the username from the room. The room is deleted once nobody is left.
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Param        roomId path string true "Room ID"
// @Param        request body leaveRoomRequest true "Username"
// @Success      200 {object} successResponse
// @Failure      400 {object} json.ErrorResponse "Malformed request body"
// @Failure      404 {object} json.ErrorResponse "Room not found"
// @Router       /rooms/{roomId}/leave [post]
func (h *Handler) LeaveRoomHandler(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomId")

	var req leaveRoomRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteBadRequestError(w, err)
		return
	}

	if err := h.roomRepository.Leave(r.Context(), roomID, req.Username); err != nil {
		h.writeError(w, r, err)
		return
	}

	json.Write(w, http.StatusOK, successResponse{Success: true})
}

// GetRoomHandler godoc
// @Summary      Get room details
// @Description  Returns members, message count and expiry of a room
// @Tags         rooms
// @Produce      json
// @Param        roomId path string true "Room ID"
// @Success      200 {object} domain.RoomInfo
// @Failure      404 {object} json.ErrorResponse "Room not found"
// @Router       /rooms/{roomId} [get]
func (h *Handler) GetRoomHandler(w http.ResponseWriter, r *http.Request) {
	info, err := h.roomRepository.GetByID(r.Context(), chi.URLParam(r, "roomId"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	json.Write(w, http.StatusOK, info)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrRoomNotFound) {
		json.WriteNotFound(w, "Room not found")
		return
	}

	h.logger.Error(logging.RequestResponse, logging.ExternalService, "room operation failed", map[logging.ExtraKey]any{
		logging.Path:         r.URL.Path,
		logging.RoomID:       chi.URLParam(r, "roomId"),
		logging.ErrorMessage: err.Error(),
	})
	json.WriteInternalError(w)
}
