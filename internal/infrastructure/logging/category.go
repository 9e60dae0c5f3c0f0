package logging

type (
	Category    string
	SubCategory string
	ExtraKey    string
)

const (
	General         Category = "General"
	Relay           Category = "Relay"
	Storage         Category = "Storage"
	RabbitMQ        Category = "RabbitMQ"
	Validation      Category = "Validation"
	RequestResponse Category = "RequestResponse"
)

const (
	Startup         SubCategory = "Startup"
	Shutdown        SubCategory = "Shutdown"
	RateLimiting    SubCategory = "RateLimiting"
	ExternalService SubCategory = "ExternalService"
	Persistence     SubCategory = "Persistence"
)

const (
	AppName      ExtraKey = "AppName"
	LoggerName   ExtraKey = "Logger"
	RoomID       ExtraKey = "RoomId"
	ConnectionID ExtraKey = "ConnectionId"
	ErrorMessage ExtraKey = "ErrorMessage"
)
