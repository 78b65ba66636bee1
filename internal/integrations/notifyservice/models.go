package notifyservice

// BookingConfirmedNotification уведомление о созданном бронировании
type BookingConfirmedNotification struct {
	RequestID     string  `json:"request_id"`
	AppointmentID int64   `json:"appointment_id"`
	UserID        int64   `json:"user_id"`
	Date          string  `json:"date"`       // YYYY-MM-DD
	StartTime     string  `json:"start_time"` // HH:MM
	LocationName  string  `json:"location_name"`
	ServiceFee    float64 `json:"service_fee,omitempty"`
}

// StatusChangedNotification уведомление о смене статуса записи
type StatusChangedNotification struct {
	RequestID     string `json:"request_id"`
	AppointmentID int64  `json:"appointment_id"`
	UserID        int64  `json:"user_id"`
	Status        string `json:"status"`
	Date          string `json:"date"`
	StartTime     string `json:"start_time"`
	LocationName  string `json:"location_name"`
}
