package notificationservice

// PaymentLinkRequest запрос на отправку SMS со ссылкой на оплату гостевого бронирования
type PaymentLinkRequest struct {
	BookingID    int64   `json:"booking_id"`
	Phone        string  `json:"phone"`
	GuestName    string  `json:"guest_name"`
	ActivityName string  `json:"activity_name"`
	Date         string  `json:"date"`       // YYYY-MM-DD
	StartTime    string  `json:"start_time"` // HH:MM
	Amount       float64 `json:"amount"`     // Сумма депозита
}

// PaymentLinkResponse ответ сервиса уведомлений
type PaymentLinkResponse struct {
	MessageID string `json:"message_id"`
	Status    string `json:"status"`
}

// ErrorResponse модель ошибки от сервиса уведомлений
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
