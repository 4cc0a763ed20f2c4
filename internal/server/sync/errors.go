package sync

import "errors"

// Ошибки применения изменений. Каждая превращается в конфликт REJECTED.
var (
	// ErrInvalidChange indicates malformed change (payload, record id, timestamp)
	ErrInvalidChange = errors.New("invalid change")

	// ErrUnknownOperation indicates unsupported change operation
	ErrUnknownOperation = errors.New("unknown operation")

	// ErrForbidden indicates that caller may not modify the record
	ErrForbidden = errors.New("operation not permitted")
)
