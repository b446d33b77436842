package messages

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hilthontt/huddle/internal/domain"
	"github.com/hilthontt/huddle/internal/infrastructure/json"
	"github.com/hilthontt/huddle/internal/infrastructure/logging"
)

// LastMessageIDParam is the query parameter carrying the poll cursor.
const LastMessageIDParam = "lastMessageId"

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

// CreateNewMessageHandler godoc
// @Summary      Post a message
// @Description  Appends a message to the room log and returns it with its id and timestamp
// @Tags         messages
// @Accept       json
// @Produce      json
// @Param        roomId path string true "Room ID"
// @Param        request body createMessageRequest true "Message text and author"
// @Success      200 {object} domain.Message
// @Failure      400 {object} json.ErrorResponse "Malformed request body"
// @Failure      404 {object} json.ErrorResponse "Room not found"
// @Router       /rooms/{roomId}/messages [post]
func (h *Handler) CreateNewMessageHandler(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomId")

	var req createMessageRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteBadRequestError(w, err)
		return
	}

	msg, err := h.roomRepository.PostMessage(r.Context(), roomID, req.Message, req.Username)
	if err != nil {
		h.writeError(w, r, roomID, err)
		return
	}

	json.Write(w, http.StatusOK, msg)
}

// ListMessagesHandler godoc
// @Summary      Poll for messages
// @Description  Returns the messages posted after lastMessageId, or the whole log when the cursor is absent or unknown
// @Tags         messages
// @Produce      json
// @Param        roomId path string true "Room ID"
// @Param        lastMessageId query string false "Id of the last message the client has"
// @Success      200 {array} domain.Message
// @Failure      404 {object} json.ErrorResponse "Room not found"
// @Router       /rooms/{roomId}/messages [get]
func (h *Handler) ListMessagesHandler(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomId")

	msgs, err := h.roomRepository.MessagesSince(r.Context(), roomID, r.URL.Query().Get(LastMessageIDParam))
	if err != nil {
		h.writeError(w, r, roomID, err)
		return
	}
	if msgs == nil {
		msgs = []domain.Message{}
	}

	json.Write(w, http.StatusOK, msgs)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, roomID string, err error) {
	if errors.Is(err, domain.ErrRoomNotFound) {
		json.WriteNotFound(w, "Room not found")
		return
	}

	h.logger.Error(logging.RequestResponse, logging.ExternalService, "message operation failed", map[logging.ExtraKey]any{
		logging.Path:         r.URL.Path,
		logging.RoomID:       roomID,
		logging.ErrorMessage: err.Error(),
	})
	json.WriteInternalError(w)
}
