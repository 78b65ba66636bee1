package reschedule_appointment

import "errors"

var (
	// ErrInvalidInput невалидные входные данные
	ErrInvalidInput = errors.New("invalid input")
	// ErrAppointmentNotFound запись не найдена
	ErrAppointmentNotFound = errors.New("appointment not found")
	// ErrNotOwner запись принадлежит другому пользователю
	ErrNotOwner = errors.New("appointment belongs to another user")
	// ErrAppointmentFinalized запись в терминальном статусе, перенос невозможен
	ErrAppointmentFinalized = errors.New("appointment is finalized")
	// ErrDateNotAvailable новая дата закрыта для записи
	ErrDateNotAvailable = errors.New("date not available for booking")
	// ErrSlotNotAvailable в новом слоте не осталось мест
	ErrSlotNotAvailable = errors.New("slot not available")
	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("internal error")
)
