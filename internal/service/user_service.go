package service

import (
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/dterira/Quorable/config"
	"github.com/dterira/Quorable/internal/apperr"
	"github.com/dterira/Quorable/internal/dto"
	"github.com/dterira/Quorable/internal/mail"
	"github.com/dterira/Quorable/internal/model"
	"github.com/dterira/Quorable/internal/repository"
	"github.com/dterira/Quorable/internal/validation"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

type UserService interface {
	Register(req dto.RegisterRequest) (*dto.UserResponse, error)
	Login(req dto.LoginRequest) (*dto.AuthResponse, error)
	VerifyEmail(userID uint, code string) error
	Get(id uint) (*model.User, error)
}

type userService struct {
	users  repository.UserRepository
	mailer mail.Mailer
	cfg    *config.Config
}

func NewUserService(users repository.UserRepository, mailer mail.Mailer, cfg *config.Config) UserService {
	return &userService{users: users, mailer: mailer, cfg: cfg}
}

func (s *userService) Register(req dto.RegisterRequest) (*dto.UserResponse, error) {
	for field, value := range map[string]string{
		"fname":    req.FName,
		"lname":    req.LName,
		"email":    req.Email,
		"password": req.Password,
	} {
		if err := validation.User.Field(field, value); err != nil {
			return nil, err
		}
	}

	if existing, err := s.users.FindByEmail(req.Email); err == nil && existing != nil {
		return nil, validation.User.Fail("email", "unique")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	roles := req.Roles
	if roles == 0 {
		roles = model.RoleAsker
	}

	user := &model.User{
		FName:                 req.FName,
		MName:                 req.MName,
		LName:                 req.LName,
		Email:                 req.Email,
		Password:              string(hash),
		Roles:                 roles,
		EmailVerificationCode: gofakeit.DigitN(6),
	}
	if err := s.users.Create(user); err != nil {
		log.Error().Err(err).Msg("Failed to create user")
		return nil, err
	}

	if err := s.mailer.SendEmailVerification(user, user.EmailVerificationCode); err != nil {
		// Registration stands; the code can be re-sent.
		log.Error().Err(err).Uint("userID", user.ID).Msg("Failed to send verification mail")
	}

	var resp dto.UserResponse
	copier.Copy(&resp, user)
	return &resp, nil
}

func (s *userService) Login(req dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.users.FindByEmail(req.Email)
	if err != nil {
		return nil, apperr.Validation("Invalid email or password.")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return nil, apperr.Validation("Invalid email or password.")
	}

	claims := jwt.MapClaims{
		"sub":   float64(user.ID),
		"roles": user.Roles,
		"exp":   time.Now().Add(s.cfg.Auth.TokenTTL).Unix(),
		"iat":   time.Now().Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Auth.JWTSecret))
	if err != nil {
		return nil, err
	}

	resp := &dto.AuthResponse{Token: token}
	copier.Copy(&resp.User, user)
	return resp, nil
}

func (s *userService) VerifyEmail(userID uint, code string) error {
	user, err := s.users.FindByID(userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return apperr.NotFound("User not found.")
		}
		return err
	}
	if user.EmailVerifiedAt != nil {
		return nil
	}
	if user.EmailVerificationCode == "" || user.EmailVerificationCode != code {
		return apperr.Validation("Invalid verification code.")
	}

	now := time.Now()
	user.EmailVerifiedAt = &now
	user.EmailVerificationCode = ""
	return s.users.Update(user)
}

func (s *userService) Get(id uint) (*model.User, error) {
	user, err := s.users.FindByID(id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.NotFound("User not found.")
		}
		return nil, err
	}
	return user, nil
}
