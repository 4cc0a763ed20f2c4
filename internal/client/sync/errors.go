package sync

import (
	"errors"
	"fmt"
)

// Ошибки предусловий синхронизации. Повторные попытки для них не выполняются.
var (
	// ErrNetworkUnavailable indicates that network status source reports no connectivity
	ErrNetworkUnavailable = errors.New("network unavailable")

	// ErrMissingCredentials indicates that there is no access token
	ErrMissingCredentials = errors.New("missing credentials")

	// ErrServerRejected indicates that server processed the batch but reported success=false
	ErrServerRejected = errors.New("server rejected sync batch")
)

// TransportError возвращается, когда все попытки доставки пакета исчерпаны.
// Журнал при этом не изменяется.
type TransportError struct {
	Err      error // ошибка последней попытки
	Attempts int   // сколько раз был вызван транспорт
	Retries  int   // сколько повторных попыток было исчерпано
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("sync failed after %d attempts (%d retries exhausted): %v", e.Attempts, e.Retries, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
