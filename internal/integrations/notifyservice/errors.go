package notifyservice

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("notifyservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса.
	// Вызывающая сторона обязана только логировать ошибки доставки:
	// сбой уведомления никогда не отменяет успешное бронирование.
	ErrInvalidResponse = errors.New("notifyservice client: invalid response")
)
