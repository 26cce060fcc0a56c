package types

const ContextUserKey = "user"

const ContextRequestIDKey = "request_id"

const RequestIDHeader = "X-Request-ID"

// DateLayout is the wire format for every date field, REST and GraphQL alike.
const DateLayout = "2006-01-02"

var (
	// Default allowed origins for development
	DefaultOrigins = []string{
		"http://localhost:3000",
		"http://localhost:5173",
	}
)
