package domain

import "github.com/velikhov/CSP-BookingService/pkg/types"

// TimeBuckets фиксированный набор временных слотов, одинаковый для обоих типов локаций
var TimeBuckets = []types.TimeString{
	"09:00",
	"10:00",
	"11:00",
	"12:00",
	"13:00",
	"14:00",
	"15:00",
	"16:00",
}

// IsValidTimeBucket проверяет, что время входит в фиксированный набор слотов
func IsValidTimeBucket(t types.TimeString) bool {
	for _, bucket := range TimeBuckets {
		if bucket == t {
			return true
		}
	}
	return false
}

// Дефолтная ёмкость центра обслуживания: на каждый временной слот
// 6 мест для возрастной группы до 15 лет и 9 мест для 15 лет и старше.
// Переопределяется на конкретную дату через AppointmentConfig.
const (
	DefaultSlotsUnder15 = 6
	DefaultSlotsOver15  = 9
)

// ResourceCenterServiceFee фиксированная стоимость приёма в центре обслуживания.
// Выездное обслуживание бесплатно.
const ResourceCenterServiceFee = 150.00

// ResourceCenterName отображаемое название центра обслуживания для уведомлений
const ResourceCenterName = "Resource Center"

// Business validation constants
const (
	MaxPurposeLength = 200
	MaxNotesLength   = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
