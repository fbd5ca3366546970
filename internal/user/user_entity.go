package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	LoginID      string    `gorm:"type:varchar(50);not null;uniqueIndex:uq_users_login_id"`
	PasswordHash string    `gorm:"type:varchar(100);not null"`
	Name         string    `gorm:"type:varchar(100);not null"`

	Division string `gorm:"type:varchar(50);not null;index:idx_users_division_team"`
	Team     string `gorm:"type:varchar(50);not null;index:idx_users_division_team"`
	Role     string `gorm:"type:varchar(20);not null;default:'NONE'"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
