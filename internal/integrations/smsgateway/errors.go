package smsgateway

import "errors"

var (
	// ErrInvalidRecipient возвращается, когда шлюз отклонил номер получателя
	ErrInvalidRecipient = errors.New("smsgateway client: invalid recipient")

	// ErrUnauthorized возвращается, когда шлюз отклонил токен
	ErrUnauthorized = errors.New("smsgateway client: unauthorized")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("smsgateway client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе шлюза
	ErrInvalidResponse = errors.New("smsgateway client: invalid response")
)
