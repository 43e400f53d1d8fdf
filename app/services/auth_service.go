package services

import (
	"strings"

	"github.com/smartbytes/canteen/app/models"
	"github.com/smartbytes/canteen/app/repositories"
	"github.com/smartbytes/canteen/pkg/apperr"
	"github.com/smartbytes/canteen/pkg/auth"
	"github.com/smartbytes/canteen/pkg/orm"
)

// AuthService handles registration and login.
type AuthService struct {
	users *repositories.UserRepository
}

func NewAuthService() *AuthService {
	return &AuthService{users: repositories.NewUserRepository()}
}

type RegisterInput struct {
	Username string `json:"username" validate:"required,alpha_dash,min=2,max=50"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role"     validate:"nullable,in=STUDENT,CANTEEN_MANAGER,ADMIN,NGO"`
}

type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// Register creates a new account. The role defaults to STUDENT when omitted.
func (s *AuthService) Register(in RegisterInput) (AuthResponse, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)

	if username == "" {
		return AuthResponse{}, apperr.InvalidArgument("username is required")
	}
	if email == "" {
		return AuthResponse{}, apperr.InvalidArgument("email is required")
	}
	if len(in.Password) < 6 {
		return AuthResponse{}, apperr.InvalidArgument("password must be at least 6 characters")
	}

	role := models.RoleStudent
	if in.Role != "" {
		parsed, ok := models.ParseRole(in.Role)
		if !ok {
			return AuthResponse{}, apperr.InvalidArgument("invalid role %q", in.Role)
		}
		role = parsed
	}

	if taken, err := s.users.ExistsByUsername(username); err != nil {
		return AuthResponse{}, err
	} else if taken {
		return AuthResponse{}, apperr.Conflict("username %q is already taken", username)
	}
	if taken, err := s.users.ExistsByEmail(email); err != nil {
		return AuthResponse{}, err
	} else if taken {
		return AuthResponse{}, apperr.Conflict("email %q is already registered", email)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return AuthResponse{}, err
	}

	user := models.User{
		Username: username,
		Email:    email,
		Password: hash,
		Role:     role,
	}
	if err := s.users.Create(&user); err != nil {
		return AuthResponse{}, err
	}

	token, err := auth.GenerateToken(user.ID, user.Username, string(user.Role))
	if err != nil {
		return AuthResponse{}, err
	}
	return AuthResponse{Token: token, User: newUserResponse(user)}, nil
}

// Login verifies credentials and issues an access token. Unknown usernames
// and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(in LoginInput) (AuthResponse, error) {
	user, err := s.users.FindByUsername(strings.TrimSpace(in.Username))
	if err != nil {
		if orm.IsNotFound(err) {
			return AuthResponse{}, apperr.Unauthenticated("invalid credentials")
		}
		return AuthResponse{}, err
	}
	if !auth.CheckPassword(user.Password, in.Password) {
		return AuthResponse{}, apperr.Unauthenticated("invalid credentials")
	}

	token, err := auth.GenerateToken(user.ID, user.Username, string(user.Role))
	if err != nil {
		return AuthResponse{}, err
	}
	return AuthResponse{Token: token, User: newUserResponse(user)}, nil
}
