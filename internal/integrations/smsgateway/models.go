package smsgateway

// SendRequest тело запроса на отправку SMS
type SendRequest struct {
	To        string `json:"to"`
	From      string `json:"from,omitempty"`
	Text      string `json:"text"`
	Reference string `json:"reference,omitempty"` // идентификатор задачи для идемпотентности на стороне шлюза
}

// SendResponse ответ шлюза
type SendResponse struct {
	MessageID string `json:"message_id"`
	Status    string `json:"status"`
}

// ErrorResponse модель ошибки шлюза
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
