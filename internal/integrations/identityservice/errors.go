package identityservice

import "errors"

var (
	// ErrProfileNotFound возвращается, когда профиль пользователя не найден
	ErrProfileNotFound = errors.New("identityservice client: profile not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("identityservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("identityservice client: invalid response")
)
