package create_appointment

import (
	"time"

	"github.com/velikhov/CSP-BookingService/internal/domain"
	"github.com/velikhov/CSP-BookingService/internal/integrations/identityservice"
	"github.com/velikhov/CSP-BookingService/pkg/ptr"
)

// ageGroupFromProfile определяет возрастную группу заявителя.
// Дата рождения имеет приоритет над самодекларированным возрастом;
// если ни то, ни другое не известно, возвращает nil.
func ageGroupFromProfile(profile *identityservice.Profile, now time.Time) *domain.AgeGroup {
	if profile == nil {
		return nil
	}

	if profile.DateOfBirth != nil {
		return ptr.Ptr(domain.AgeGroupForAge(domain.AgeFromDateOfBirth(*profile.DateOfBirth, now)))
	}

	if profile.Age != nil {
		return ptr.Ptr(domain.AgeGroupForAge(*profile.Age))
	}

	return nil
}

// truncateToDay обнуляет компонент времени: дата трактуется
// как настенный календарный день
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
