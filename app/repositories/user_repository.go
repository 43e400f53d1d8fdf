package repositories

import (
	"github.com/smartbytes/canteen/app/models"
	"github.com/smartbytes/canteen/pkg/orm"
)

// UserRepository handles database operations for User.
type UserRepository struct {
	tx *orm.Query
}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// WithTx returns a repository bound to the given transaction.
func (r *UserRepository) WithTx(tx *orm.Query) *UserRepository {
	return &UserRepository{tx: tx}
}

func (r *UserRepository) q() *orm.Query {
	if r.tx != nil {
		return r.tx
	}
	return orm.DB()
}

// FindByID looks up a user by primary key.
func (r *UserRepository) FindByID(id uint) (models.User, error) {
	var user models.User
	err := r.q().Model(&models.User{}).Where("id = ?", id).First(&user)
	return user, err
}

// FindByUsername looks up a user by their unique username.
func (r *UserRepository) FindByUsername(username string) (models.User, error) {
	var user models.User
	err := r.q().Model(&models.User{}).Where("username = ?", username).First(&user)
	return user, err
}

// ExistsByUsername reports whether a user with the given username exists.
func (r *UserRepository) ExistsByUsername(username string) (bool, error) {
	var count int64
	err := r.q().Model(&models.User{}).Where("username = ?", username).Count(&count)
	return count > 0, err
}

// ExistsByEmail reports whether a user with the given email exists.
func (r *UserRepository) ExistsByEmail(email string) (bool, error) {
	var count int64
	err := r.q().Model(&models.User{}).Where("email = ?", email).Count(&count)
	return count > 0, err
}

// Create persists a new user record.
func (r *UserRepository) Create(user *models.User) error {
	return r.q().Create(user)
}

// Save persists changes to an existing user.
func (r *UserRepository) Save(user *models.User) error {
	return r.q().Save(user)
}

// All returns all users.
func (r *UserRepository) All() ([]models.User, error) {
	var users []models.User
	err := r.q().Model(&models.User{}).Order("id").Get(&users)
	return users, err
}

// Delete removes a user record.
func (r *UserRepository) Delete(user *models.User) error {
	return r.q().Delete(user)
}
