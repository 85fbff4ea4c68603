package response

const (
	MessageSuccess = "success"

	InternalServerErrorCode = 500
	DefaultErrorMessage     = "Internal server error"

	DateFormat     = "2006-01-02"
	DateTimeFormat = "2006-01-02 15:04:05"
)
