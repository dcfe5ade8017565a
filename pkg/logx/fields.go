package logx

const (
	FieldAppName        = "app-name"
	FieldAppVersion     = "app-version"
	FieldDurationMs     = "duration-ms"
	FieldError          = "error"
	FieldGiftID         = "gift-id"
	FieldHTTPMethod     = "http-method"
	FieldIP             = "ip"
	FieldPollHash       = "poll-hash"
	FieldResponseStatus = "response-status"
	FieldStack          = "stack"
	FieldTraceID        = "trace-id"
	FieldURL            = "url"
)
