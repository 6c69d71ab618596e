package user

import "time"

type User struct {
	ID        int64      `gorm:"primaryKey"`
	GoogleID  *string    `gorm:"column:google_id;type:text"`
	Email     string     `gorm:"type:text;uniqueIndex;not null"`
	Name      string     `gorm:"type:text"`
	Picture   *string    `gorm:"type:text"`
	IsActive  bool       `gorm:"column:is_active;not null;default:true"`
	IsAdmin   bool       `gorm:"column:is_admin;not null;default:false"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
	LastLogin *time.Time `gorm:"column:last_login"`
}

func (User) TableName() string {
	return "users"
}

// Identity is what a verified identity token says about its holder.
type Identity struct {
	Subject string
	Email   string
	Name    string
	Picture string
}
