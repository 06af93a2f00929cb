package service

import (
	"testing"
	"time"

	"github.com/dterira/Quorable/config"
	"github.com/dterira/Quorable/internal/dto"
	"github.com/dterira/Quorable/internal/model"
	"github.com/dterira/Quorable/internal/repository"
	"github.com/dterira/Quorable/internal/testutil"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

type captureMailer struct {
	lastCode string
}

func (m *captureMailer) SendEmailVerification(user *model.User, code string) error {
	m.lastCode = code
	return nil
}

func newUserService(t *testing.T) (UserService, *captureMailer, *gorm.DB) {
	t.Helper()
	db := testutil.OpenDB(t)
	mailer := &captureMailer{}
	cfg := &config.Config{}
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.TokenTTL = time.Hour
	svc := NewUserService(repository.NewUserRepository(db), mailer, cfg)
	return svc, mailer, db
}

func TestUserService_Register(t *testing.T) {
	svc, mailer, _ := newUserService(t)

	req := dto.RegisterRequest{
		FName:    "Ada",
		LName:    "Lovelace",
		Email:    "ada@example.com",
		Password: "hunter22",
	}

	user, err := svc.Register(req)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Roles != model.RoleAsker {
		t.Errorf("roles = %d, want default asker", user.Roles)
	}
	if len(mailer.lastCode) != 6 {
		t.Errorf("verification code %q, want 6 digits", mailer.lastCode)
	}

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.Register(req)
		if ae := appErr(t, err); ae.Message != "Email is already taken." {
			t.Errorf("message = %q", ae.Message)
		}
	})

	t.Run("short password", func(t *testing.T) {
		bad := req
		bad.Email = "other@example.com"
		bad.Password = "nope"
		_, err := svc.Register(bad)
		if ae := appErr(t, err); ae.Message != "Password should be at least 6 characters." {
			t.Errorf("message = %q", ae.Message)
		}
	})
}

func TestUserService_LoginAndVerify(t *testing.T) {
	svc, mailer, db := newUserService(t)

	registered, err := svc.Register(dto.RegisterRequest{
		FName:    "Grace",
		LName:    "Hopper",
		Email:    "grace@example.com",
		Password: "compile1",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(dto.LoginRequest{Email: "grace@example.com", Password: "wrong"})
		if ae := appErr(t, err); ae.Message != "Invalid email or password." {
			t.Errorf("message = %q", ae.Message)
		}
	})

	t.Run("token claims", func(t *testing.T) {
		resp, err := svc.Login(dto.LoginRequest{Email: "grace@example.com", Password: "compile1"})
		if err != nil {
			t.Fatalf("login: %v", err)
		}
		token, err := jwt.Parse(resp.Token, func(*jwt.Token) (any, error) {
			return []byte("test-secret"), nil
		})
		if err != nil || !token.Valid {
			t.Fatalf("token invalid: %v", err)
		}
		claims := token.Claims.(jwt.MapClaims)
		if uint(claims["sub"].(float64)) != registered.ID {
			t.Errorf("sub = %v, want %d", claims["sub"], registered.ID)
		}
	})

	t.Run("verify email", func(t *testing.T) {
		if err := svc.VerifyEmail(registered.ID, "000000"); err == nil {
			t.Error("wrong code accepted")
		}
		if err := svc.VerifyEmail(registered.ID, mailer.lastCode); err != nil {
			t.Fatalf("verify: %v", err)
		}

		var user model.User
		db.First(&user, registered.ID)
		if user.EmailVerifiedAt == nil {
			t.Error("email_verified_at not set")
		}
		if user.EmailVerificationCode != "" {
			t.Error("verification code not cleared")
		}

		// Re-verifying is a no-op.
		if err := svc.VerifyEmail(registered.ID, "whatever"); err != nil {
			t.Errorf("re-verify: %v", err)
		}
	})
}
