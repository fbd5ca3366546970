package user

import (
	"context"

	"gorm.io/gorm"

	"github.com/1000bang/vacation-api-sub001/internal/domain"
)

//go:generate mockgen -source=user_repo.go -destination=mock/user_repo_mock.go -package=mock
type Repository interface {
	FindByID(ctx context.Context, id string) (*User, error)
	FindByLoginID(ctx context.Context, loginID string) (*User, error)
	// FindApprovers returns every user holding the given role inside a
	// division; pass a non-empty team to narrow to one team. Used for
	// alarm fan-out to eligible approvers.
	FindApprovers(ctx context.Context, role domain.RoleLevel, division, team string) ([]User, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByID(ctx context.Context, id string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	return &u, err
}

func (r *repository) FindByLoginID(ctx context.Context, loginID string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).First(&u, "login_id = ?", loginID).Error
	return &u, err
}

func (r *repository) FindApprovers(ctx context.Context, role domain.RoleLevel, division, team string) ([]User, error) {
	db := r.db.WithContext(ctx).
		Where("role = ?", string(role)).
		Where("division = ?", division)
	if team != "" {
		db = db.Where("team = ?", team)
	}

	var users []User
	err := db.Order("name ASC").Find(&users).Error
	return users, err
}
