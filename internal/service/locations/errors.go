package locations

import "errors"

var (
	// ErrLocationNotFound возвращается, когда площадка не найдена
	ErrLocationNotFound = errors.New("outreach location not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
