package journal

import "errors"

// Ошибки журнала изменений. Все они означают ошибку вызывающего кода
// и не должны повторяться.
var (
	// ErrInvalidData indicates that change data cannot be serialized or violates the table schema
	ErrInvalidData = errors.New("invalid change data")

	// ErrUnknownTable indicates that table is not synchronized
	ErrUnknownTable = errors.New("unknown table")

	// ErrUnknownOperation indicates that operation is not CREATE, UPDATE or DELETE
	ErrUnknownOperation = errors.New("unknown operation")
)
