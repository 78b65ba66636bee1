package create_appointment

import "errors"

var (
	// ErrInvalidInput невалидные входные данные
	ErrInvalidInput = errors.New("invalid input")
	// ErrDateNotAvailable дата закрыта для записи (календарь или конфигурация)
	ErrDateNotAvailable = errors.New("date not available for booking")
	// ErrSlotNotAvailable в слоте не осталось мест для возрастной группы заявителя
	ErrSlotNotAvailable = errors.New("slot not available")
	// ErrLocationNotFound выездная площадка не найдена
	ErrLocationNotFound = errors.New("outreach location not found")
	// ErrLocationInactive выездная площадка выведена из обслуживания
	ErrLocationInactive = errors.New("outreach location is inactive")
	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("internal error")
)
