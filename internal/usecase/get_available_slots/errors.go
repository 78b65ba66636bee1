package get_available_slots

import "errors"

var (
	// ErrLocationNotFound возвращается, когда выездная площадка не найдена
	ErrLocationNotFound = errors.New("get_available_slots: outreach location not found")

	// ErrLocationInactive возвращается, когда выездная площадка отключена
	ErrLocationInactive = errors.New("get_available_slots: outreach location is inactive")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
