package domain

import "time"

// AppointmentConfig represents an optional per-date, per-location-type override.
// Отсутствие записи на дату означает "действуют дефолтные календарные правила
// и ёмкость": конфигурация разреженная, не обязана покрывать все даты.
type AppointmentConfig struct {
	ID           int64
	Date         time.Time
	LocationType LocationType
	IsAvailable  bool // false = дата жёстко закрыта для записи
	SlotsUnder15 *int // переопределение ёмкости младшей группы (только resource center)
	SlotsOver15  *int // переопределение ёмкости старшей группы (только resource center)

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AllowanceUnder15 возвращает ёмкость младшей группы на слот с учётом переопределения.
// nil-конфигурация допустима и означает дефолтную ёмкость.
func (c *AppointmentConfig) AllowanceUnder15() int {
	if c != nil && c.SlotsUnder15 != nil {
		return *c.SlotsUnder15
	}
	return DefaultSlotsUnder15
}

// AllowanceOver15 возвращает ёмкость старшей группы на слот с учётом переопределения
func (c *AppointmentConfig) AllowanceOver15() int {
	if c != nil && c.SlotsOver15 != nil {
		return *c.SlotsOver15
	}
	return DefaultSlotsOver15
}

// ClosesDate возвращает true, если конфигурация жёстко закрывает дату
func (c *AppointmentConfig) ClosesDate() bool {
	return c != nil && !c.IsAvailable
}
