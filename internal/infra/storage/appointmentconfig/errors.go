package appointmentconfig

import "errors"

var (
	// ErrConfigNotFound возвращается, когда на дату нет переопределения конфигурации.
	// Это штатная ситуация: отсутствие строки означает дефолтные правила.
	ErrConfigNotFound = errors.New("appointmentconfig.repository: config not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("appointmentconfig.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("appointmentconfig.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("appointmentconfig.repository: failed to scan row")
)
