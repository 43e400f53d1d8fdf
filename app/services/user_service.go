package services

import (
	"github.com/smartbytes/canteen/app/models"
	"github.com/smartbytes/canteen/app/policy"
	"github.com/smartbytes/canteen/app/repositories"
	"github.com/smartbytes/canteen/pkg/apperr"
)

// UserService covers account administration.
type UserService struct {
	users *repositories.UserRepository
}

func NewUserService() *UserService {
	return &UserService{users: repositories.NewUserRepository()}
}

// All returns every account.
func (s *UserService) All(caller policy.Identity) ([]UserResponse, error) {
	if err := policy.Authorize(caller, models.RoleAdmin); err != nil {
		return nil, err
	}

	users, err := s.users.All()
	if err != nil {
		return nil, err
	}

	out := make([]UserResponse, len(users))
	for i, user := range users {
		out[i] = newUserResponse(user)
	}
	return out, nil
}

// Get returns one account by id.
func (s *UserService) Get(caller policy.Identity, id uint) (UserResponse, error) {
	if err := policy.Authorize(caller, models.RoleAdmin); err != nil {
		return UserResponse{}, err
	}

	user, err := s.users.FindByID(id)
	if err != nil {
		return UserResponse{}, fetchErr(err, "user %d not found", id)
	}
	return newUserResponse(user), nil
}

// UpdateRole changes an account's role. Admins cannot change their own.
func (s *UserService) UpdateRole(caller policy.Identity, id uint, raw string) (UserResponse, error) {
	if err := policy.Authorize(caller, models.RoleAdmin); err != nil {
		return UserResponse{}, err
	}

	role, ok := models.ParseRole(raw)
	if !ok {
		return UserResponse{}, apperr.InvalidArgument("invalid role %q", raw)
	}
	if id == caller.UserID {
		return UserResponse{}, apperr.Forbidden("you cannot change your own role")
	}

	user, err := s.users.FindByID(id)
	if err != nil {
		return UserResponse{}, fetchErr(err, "user %d not found", id)
	}

	user.Role = role
	if err := s.users.Save(&user); err != nil {
		return UserResponse{}, err
	}
	return newUserResponse(user), nil
}

// Delete removes an account. Admins cannot delete their own.
func (s *UserService) Delete(caller policy.Identity, id uint) error {
	if err := policy.Authorize(caller, models.RoleAdmin); err != nil {
		return err
	}
	if id == caller.UserID {
		return apperr.Forbidden("you cannot delete your own account")
	}

	user, err := s.users.FindByID(id)
	if err != nil {
		return fetchErr(err, "user %d not found", id)
	}
	return s.users.Delete(&user)
}
