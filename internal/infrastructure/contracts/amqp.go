package contracts

// AmqpMessage is the message structure for AMQP.
type AmqpMessage struct {
	RoomID string `json:"roomId"`
	Data   []byte `json:"data"`
}

const (
	RoomEventsQueue    = "room_events"
	DeadLetterExchange = "huddle.dlx"
	DeadLetterQueue    = "dead_letter_queue"
)

// RoomEventRoutingKeys binds the room events queue to every event type.
var RoomEventRoutingKeys = []string{"room.*", "member.*", "message.*"}
