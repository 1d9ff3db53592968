package model

import "github.com/google/uuid"

// RegionModel mirrors the 'regions' table.
type RegionModel struct {
	Base
	Name string `gorm:"type:varchar(150);uniqueIndex;not null"`
	Code string `gorm:"type:varchar(20)"`
}

// TableName explicitly sets the table name for GORM.
func (RegionModel) TableName() string {
	return "regions"
}

// CityModel mirrors the 'cities' table. Names are unique within a region.
type CityModel struct {
	Base
	Name     string    `gorm:"type:varchar(150);not null;uniqueIndex:idx_cities_region_name"`
	RegionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cities_region_name"`
}

// TableName explicitly sets the table name for GORM.
func (CityModel) TableName() string {
	return "cities"
}

// SectionModel mirrors the 'sections' table.
type SectionModel struct {
	Base
	Name     string    `gorm:"type:varchar(150);not null;uniqueIndex:idx_sections_city_name"`
	CityID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_sections_city_name"`
	IsActive bool      `gorm:"not null;default:true"`
}

// TableName explicitly sets the table name for GORM.
func (SectionModel) TableName() string {
	return "sections"
}

// SubSectionModel mirrors the 'sub_sections' table.
type SubSectionModel struct {
	Base
	Name      string    `gorm:"type:varchar(150);not null;uniqueIndex:idx_sub_sections_section_name"`
	SectionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_sub_sections_section_name"`
	IsActive  bool      `gorm:"not null;default:true"`
}

// TableName explicitly sets the table name for GORM.
func (SubSectionModel) TableName() string {
	return "sub_sections"
}
