package service

import (
	"context"
	"errors"
	log "log/slog"
	"strings"
	"time"

	"Folio/internal/api/dto"
	"Folio/internal/model"
	"Folio/internal/pkg/security"
	"Folio/internal/repository"
)

type AuthService interface {
	Login(ctx context.Context, in *dto.LoginDTO) (*dto.TokenDTO, error)
	Logout(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (*security.UserClaims, error)
	Me(ctx context.Context, userID uint64) (*dto.UserDTO, error)
	CreateUser(ctx context.Context, email, password, displayName string) (*model.User, error)
	IsAdmin(email string) bool
}

type authServiceImpl struct {
	userRepo   repository.UserRepo
	tokenStore TokenStore
	admins     *security.AdminList
}

func NewAuthService(userRepo repository.UserRepo, tokenStore TokenStore, admins *security.AdminList) AuthService {
	return &authServiceImpl{
		userRepo:   userRepo,
		tokenStore: tokenStore,
		admins:     admins,
	}
}

func (s *authServiceImpl) Login(ctx context.Context, in *dto.LoginDTO) (*dto.TokenDTO, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrPasswordIncorrect
	}
	if err = security.CheckPasswordHash(in.Password, user.PasswordHash); err != nil {
		if errors.Is(err, security.ErrInvalidCredentials) {
			return nil, ErrPasswordIncorrect
		}
		return nil, err
	}

	token, err := security.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	log.InfoContext(ctx, "user login", "user_id", user.ID)
	return &dto.TokenDTO{
		Token:     token,
		ExpiresAt: time.Now().Add(security.TokenTTL()).Unix(),
	}, nil
}

// Logout 将签名写入黑名单直到 token 过期
func (s *authServiceImpl) Logout(ctx context.Context, token string) error {
	claims, err := security.ValidateToken(token)
	if err != nil {
		return ErrUnauthorized
	}
	signature, err := security.ExtractSignature(token)
	if err != nil {
		return ErrUnauthorized
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	return s.tokenStore.Revoke(ctx, signature, ttl)
}

// Authenticate 校验 token 且未被注销
func (s *authServiceImpl) Authenticate(ctx context.Context, token string) (*security.UserClaims, error) {
	signature, err := security.ExtractSignature(token)
	if err != nil {
		return nil, ErrUnauthorized
	}
	revoked, err := s.tokenStore.IsRevoked(ctx, signature)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrUnauthorized
	}
	claims, err := security.ValidateToken(token)
	if err != nil {
		return nil, ErrUnauthorized
	}
	return claims, nil
}

func (s *authServiceImpl) Me(ctx context.Context, userID uint64) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUnauthorized
	}
	return &dto.UserDTO{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		IsAdmin:     s.admins.IsAdmin(user.Email),
	}, nil
}

func (s *authServiceImpl) CreateUser(ctx context.Context, email, password, displayName string) (*model.User, error) {
	email = normalizeEmail(email)
	if email == "" || len(password) < 6 {
		return nil, ErrParamInvalid
	}
	exist, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, ErrUserExist
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Email:        email,
		PasswordHash: hash,
		DisplayName:  displayName,
	}
	if err = s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authServiceImpl) IsAdmin(email string) bool {
	return s.admins.IsAdmin(email)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
