package errcodes

import "git.appkode.ru/pub/go/failure"

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	TimeoutExceeded     failure.ErrorCode = "TimeoutExceeded"
	Forbidden           failure.ErrorCode = "Forbidden"
	ValidationError     failure.ErrorCode = "ValidationError"
	NotFound            failure.ErrorCode = "NotFound"
	InvalidPaging       failure.ErrorCode = "InvalidPaging"

	// Коды модуля мониторинга подарков
	GiftNotFound       failure.ErrorCode = "GiftNotFound"
	InvalidGiftID      failure.ErrorCode = "InvalidGiftID"
	FeedWriteFailed    failure.ErrorCode = "FeedWriteFailed"
	CatalogFetchFailed failure.ErrorCode = "CatalogFetchFailed"
)
