package domain

import "time"

// LocationType represents the type of service location
type LocationType string

const (
	// LocationResourceCenter стационарный центр обслуживания с ограниченной ёмкостью
	LocationResourceCenter LocationType = "resource_center"

	// LocationOutreach выездное обслуживание на площадках партнёров, без лимита мест
	LocationOutreach LocationType = "outreach"
)

// IsValid проверяет, что тип локации допустим
func (t LocationType) IsValid() bool {
	return t == LocationResourceCenter || t == LocationOutreach
}

// OutreachLocation represents a physical outreach site
type OutreachLocation struct {
	ID       int64
	Name     string
	County   string
	IsActive bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
