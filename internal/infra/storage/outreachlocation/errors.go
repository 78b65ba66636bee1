package outreachlocation

import "errors"

var (
	// ErrLocationNotFound возвращается, когда выездная площадка не найдена
	ErrLocationNotFound = errors.New("outreachlocation.repository: location not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("outreachlocation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("outreachlocation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("outreachlocation.repository: failed to scan row")
)
