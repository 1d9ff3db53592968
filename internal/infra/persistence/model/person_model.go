package model

// PersonModel holds the columns shared by owners and responsible persons.
// NationalID is nullable so that several people can be registered without one.
type PersonModel struct {
	Base
	FirstName  string  `gorm:"type:varchar(100);not null"`
	LastName   string  `gorm:"type:varchar(100)"`
	Phone      string  `gorm:"type:varchar(50);index"`
	Email      string  `gorm:"type:varchar(255)"`
	NationalID *string `gorm:"type:varchar(50);uniqueIndex"`
	Address    string  `gorm:"type:text"`
}

// OwnerModel mirrors the 'owners' table.
type OwnerModel struct {
	PersonModel
}

// TableName explicitly sets the table name for GORM.
func (OwnerModel) TableName() string {
	return "owners"
}

// ResponsiblePersonModel mirrors the 'responsible_persons' table.
type ResponsiblePersonModel struct {
	PersonModel
	Relationship string `gorm:"type:varchar(100)"`
}

// TableName explicitly sets the table name for GORM.
func (ResponsiblePersonModel) TableName() string {
	return "responsible_persons"
}
