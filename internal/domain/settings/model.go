package settings

import "time"

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// singletonID is the key of the only settings row.
const singletonID = 1

type Settings struct {
	ID             int       `gorm:"primaryKey;autoIncrement:false"`
	AppName        string    `gorm:"column:app_name;not null"`
	RecordsPerPage int       `gorm:"column:records_per_page;not null"`
	Theme          string    `gorm:"not null"`
	Language       string    `gorm:"not null"`
	Notifications  bool      `gorm:"not null"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (Settings) TableName() string {
	return "app_settings"
}

func Defaults() Settings {
	return Settings{
		ID:             singletonID,
		AppName:        "CEPIP",
		RecordsPerPage: 20,
		Theme:          ThemeLight,
		Language:       "es",
		Notifications:  true,
	}
}

type UpdateInput struct {
	AppName        *string
	RecordsPerPage *int
	Theme          *string
	Language       *string
	Notifications  *bool
}
