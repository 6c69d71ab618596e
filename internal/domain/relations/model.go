package relations

import "time"

// Link associates a person with a company, optionally with a role and department.
type Link struct {
	ID           int64     `gorm:"column:ente_persona_id;primaryKey;autoIncrement"`
	CompanyID    int64     `gorm:"column:enteid;not null"`
	PersonID     int64     `gorm:"column:personaid;not null"`
	RoleID       *int64    `gorm:"column:cargoid"`
	DepartmentID *int64    `gorm:"column:areaid"`
	LoadedAt     time.Time `gorm:"column:fecha_de_carga;type:date"`
}

func (Link) TableName() string {
	return "relacion_ente_persona"
}

type PersonCompany struct {
	ID           int64   `gorm:"column:ente_persona_id"`
	CompanyID    int64   `gorm:"column:enteid"`
	RoleID       *int64  `gorm:"column:cargoid"`
	DepartmentID *int64  `gorm:"column:areaid"`
	Company      string  `gorm:"column:razonsocial"`
	Role         *string `gorm:"column:cargo"`
	Department   *string `gorm:"column:area"`
}

type MemberParcel struct {
	ID       int64    `gorm:"column:parcelaid"`
	Parcel   *string  `gorm:"column:parcela"`
	Street   *string  `gorm:"column:calle"`
	Number   *int64   `gorm:"column:numero"`
	Area     *float64 `gorm:"column:superficie_has_"`
	HasPlant *bool    `gorm:"column:tieneplanta"`
	Rented   *bool    `gorm:"column:alquilada"`
	Fraction *string  `gorm:"column:fraccion"`
}

type LinkInput struct {
	PersonID     int64
	CompanyID    int64
	RoleID       *int64
	DepartmentID *int64
}
