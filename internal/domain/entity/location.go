package entity

import "github.com/google/uuid"

// Region is the top level administrative area.
type Region struct {
	Base
	Name string `json:"name"`
	Code string `json:"code"`
}

// City belongs to a region.
type City struct {
	Base
	Name     string    `json:"name"`
	RegionID uuid.UUID `json:"region_id"`
}

// Section is a district of a city. Sections are never hard-deleted; IsActive=false hides them.
type Section struct {
	Base
	Name     string    `json:"name"`
	CityID   uuid.UUID `json:"city_id"`
	IsActive bool      `json:"is_active"`
}

// SubSection is a subdivision of a section, soft-deleted like sections.
type SubSection struct {
	Base
	Name      string    `json:"name"`
	SectionID uuid.UUID `json:"section_id"`
	IsActive  bool      `json:"is_active"`
}
