package migrate

import "time"

// User is an application account.
type User struct {
	ID              uint   `gorm:"primaryKey"`
	Name            string `gorm:"size:255;not null"`
	Email           string `gorm:"size:255;uniqueIndex;not null"`
	EmailVerifiedAt *time.Time
	Password        string `gorm:"size:255;not null"`
	RememberToken   string `gorm:"size:100"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// PasswordResetToken is a pending password reset.
type PasswordResetToken struct {
	Email     string `gorm:"size:255;primaryKey"`
	Token     string `gorm:"size:255;not null"`
	CreatedAt *time.Time
}

// FailedJob records a queued job that exhausted its attempts.
type FailedJob struct {
	ID         uint   `gorm:"primaryKey"`
	UUID       string `gorm:"column:uuid;size:36;uniqueIndex;not null"`
	Connection string `gorm:"type:text;not null"`
	Queue      string `gorm:"type:text;not null"`
	Payload    string `gorm:"type:text;not null"`
	Exception  string `gorm:"type:text;not null"`
	FailedAt   time.Time
}

// PersonalAccessToken is an API token issued to a user.
type PersonalAccessToken struct {
	ID            uint   `gorm:"primaryKey"`
	TokenableType string `gorm:"size:255;index:idx_tokenable;not null"`
	TokenableID   uint   `gorm:"index:idx_tokenable;not null"`
	Name          string `gorm:"size:255;not null"`
	Token         string `gorm:"size:64;uniqueIndex;not null"`
	Abilities     string `gorm:"type:text"`
	LastUsedAt    *time.Time
	ExpiresAt     *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Setting is an application-wide key/value setting.
type Setting struct {
	ID    uint   `gorm:"primaryKey"`
	Key   string `gorm:"size:191;uniqueIndex;not null"`
	Value string `gorm:"type:text"`
}

// Models returns the application schema in migration order.
func Models() []any {
	return []any{
		&User{},
		&PasswordResetToken{},
		&FailedJob{},
		&PersonalAccessToken{},
		&Setting{},
	}
}

// DefaultSettings are seeded on every fresh install.
func DefaultSettings() []Setting {
	return []Setting{
		{Key: "app.installed", Value: "true"},
		{Key: "app.maintenance", Value: "false"},
		{Key: "log_viewer.enabled", Value: "true"},
	}
}
