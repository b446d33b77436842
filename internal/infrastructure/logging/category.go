package logging

type Category string
type SubCategory string
type ExtraKey string

const (
	General         Category = "General"
	IO              Category = "IO"
	Internal        Category = "Internal"
	RoomStore       Category = "RoomStore"
	RabbitMQ        Category = "RabbitMQ"
	MongoDB         Category = "MongoDB"
	Validation      Category = "Validation"
	RequestResponse Category = "RequestResponse"
	Prometheus      Category = "Prometheus"
	Client          Category = "Client"
)

const (
	// General
	Startup         SubCategory = "Startup"
	Shutdown        SubCategory = "Shutdown"
	ExternalService SubCategory = "ExternalService"

	// RoomStore
	Expiry SubCategory = "Expiry"

	// Events
	Publish SubCategory = "Publish"
	Consume SubCategory = "Consume"
	Insert  SubCategory = "Insert"

	// Client
	Poll SubCategory = "Poll"
	Send SubCategory = "Send"
)

const (
	AppName      ExtraKey = "AppName"
	LoggerName   ExtraKey = "Logger"
	ClientIp     ExtraKey = "ClientIp"
	Method       ExtraKey = "Method"
	StatusCode   ExtraKey = "StatusCode"
	BodySize     ExtraKey = "BodySize"
	Path         ExtraKey = "Path"
	Latency      ExtraKey = "Latency"
	RoomID       ExtraKey = "RoomId"
	EventType    ExtraKey = "EventType"
	RequestID    ExtraKey = "RequestId"
	ErrorMessage ExtraKey = "ErrorMessage"
)
