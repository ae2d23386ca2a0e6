package employee

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/workpulse-hq/workforce-backend-go/internal/config"
	"github.com/workpulse-hq/workforce-backend-go/internal/domain/attendance"
	"github.com/workpulse-hq/workforce-backend-go/internal/domain/user"
	"github.com/workpulse-hq/workforce-backend-go/internal/pkg/email"
	"github.com/workpulse-hq/workforce-backend-go/internal/repository/postgresql"
)

type ServiceImpl struct {
	repo   user.UserRepository
	tokens postgresql.JWTRepository
	mailer email.EmailService
	cfg    config.AppConfig
	logger *slog.Logger

	now func() time.Time
}

func NewService(
	repo user.UserRepository,
	tokens postgresql.JWTRepository,
	mailer email.EmailService,
	cfg config.AppConfig,
	logger *slog.Logger,
) *ServiceImpl {
	return &ServiceImpl{
		repo:   repo,
		tokens: tokens,
		mailer: mailer,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

// Create implements user.EmployeeService.
func (s *ServiceImpl) Create(ctx context.Context, req user.CreateEmployeeRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
		return user.UserResponse{}, user.ErrUserEmailExists
	} else if !errors.Is(err, user.ErrUserNotFound) {
		return user.UserResponse{}, err
	}

	code, err := s.nextEmployeeCode(ctx)
	if err != nil {
		return user.UserResponse{}, err
	}

	tempPassword, err := generatePassword()
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to generate temporary password: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}
	hashed := string(hash)

	role := req.Role
	if role == "" {
		role = user.RoleEmployee
	}

	created, err := s.repo.Create(ctx, user.User{
		Email:        req.Email,
		EmployeeCode: code,
		Name:         req.Name,
		PasswordHash: &hashed,
		Role:         role,
		IsActive:     true,
	})
	if err != nil {
		return user.UserResponse{}, err
	}

	if err := s.mailer.SendEmployeeCredentials(created.Email, created.Name, code, tempPassword, s.cfg.FrontendURL); err != nil {
		// The account exists; the admin can resend credentials manually.
		s.logger.Error("failed to email employee credentials",
			slog.String("user_id", created.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.Info("employee created",
		slog.String("user_id", created.ID),
		slog.String("employee_code", code),
		slog.String("role", string(role)),
	)

	return user.ToResponse(created), nil
}

// List implements user.EmployeeService.
func (s *ServiceImpl) List(ctx context.Context) ([]user.UserResponse, error) {
	users, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, user.ToResponse(u))
	}
	return responses, nil
}

// Deactivate implements user.EmployeeService.
func (s *ServiceImpl) Deactivate(ctx context.Context, id string) error {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	u.IsActive = false
	if err := s.repo.Update(ctx, u); err != nil {
		return err
	}

	if err := s.tokens.RevokeAllForUser(ctx, id); err != nil {
		return err
	}

	s.logger.Info("employee deactivated", slog.String("user_id", id))
	return nil
}

// nextEmployeeCode produces codes like EMP-2026-0007, sequenced per year.
func (s *ServiceImpl) nextEmployeeCode(ctx context.Context) (string, error) {
	year := s.now().Year()
	count, err := s.repo.CountCreatedInYear(ctx, year)
	if err != nil {
		return "", fmt.Errorf("failed to sequence employee code: %w", err)
	}
	return fmt.Sprintf("EMP-%d-%04d", year, count+1), nil
}

func generatePassword() (string, error) {
	buf := make([]byte, 12)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// Directory adapts the user repository to the attendance engine's
// UserDirectory port.
type Directory struct {
	repo user.UserRepository
}

func NewDirectory(repo user.UserRepository) *Directory {
	return &Directory{repo: repo}
}

// ListActive implements attendance.UserDirectory.
func (d *Directory) ListActive(ctx context.Context) ([]attendance.DirectoryUser, error) {
	users, err := d.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	directory := make([]attendance.DirectoryUser, 0, len(users))
	for _, u := range users {
		directory = append(directory, attendance.DirectoryUser{ID: u.ID, Name: u.Name})
	}
	return directory, nil
}
