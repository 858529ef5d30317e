package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"vidstream/internal/model"
	"vidstream/internal/token"
)

const bcryptCost = 12

// UserCredentialStore is the slice of the user repository the auth
// protocol needs.
type UserCredentialStore interface {
	Create(ctx context.Context, u model.User) error
	FindByID(ctx context.Context, id string) (model.User, error)
	FindByIdentifier(ctx context.Context, identifier string) (model.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username string, email string) (bool, error)
	SetRefreshTokenHash(ctx context.Context, userID string, hash string) error
	RotateRefreshTokenHash(ctx context.Context, userID string, oldHash string, newHash string) (bool, error)
	ClearRefreshTokenHash(ctx context.Context, userID string) error
	UpdatePassword(ctx context.Context, userID string, passwordHash string) error
}

// AuthService implements login, refresh rotation with reuse
// detection, logout, and password change. The store keeps only the
// SHA-256 of the single currently valid refresh token per user, so
// the server state stays authoritative over the stateless signature.
type AuthService struct {
	users  UserCredentialStore
	issuer *token.Issuer
}

func NewAuthService(users UserCredentialStore, issuer *token.Issuer) *AuthService {
	return &AuthService{users: users, issuer: issuer}
}

// hashRefreshToken is deterministic on purpose: the rotation update is
// keyed on the previous hash, so a keyed lookup-and-swap must work.
func hashRefreshToken(t string) string {
	sum := sha256.Sum256([]byte(t))
	return hex.EncodeToString(sum[:])
}

func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (model.UserSummary, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)
	fullname := strings.TrimSpace(req.Fullname)

	if username == "" || email == "" || fullname == "" || req.Password == "" {
		return model.UserSummary{}, fmt.Errorf("%w: username, email, fullname and password are required", model.ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return model.UserSummary{}, fmt.Errorf("%w: malformed email address", model.ErrInvalidInput)
	}
	if len(req.Password) < 8 {
		return model.UserSummary{}, fmt.Errorf("%w: password must be at least 8 characters", model.ErrInvalidInput)
	}

	exists, err := s.users.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return model.UserSummary{}, err
	}
	if exists {
		return model.UserSummary{}, model.ErrUserAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return model.UserSummary{}, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := model.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		Fullname:     fullname,
		Avatar:       strings.TrimSpace(req.Avatar),
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return model.UserSummary{}, err
	}

	return user.Summary(), nil
}

// Login verifies credentials and installs a fresh token pair. A
// missing user and a wrong password are indistinguishable to the
// caller.
func (s *AuthService) Login(ctx context.Context, identifier string, password string) (model.TokenPair, error) {
	if strings.TrimSpace(identifier) == "" || password == "" {
		return model.TokenPair{}, fmt.Errorf("%w: identifier and password are required", model.ErrInvalidInput)
	}

	user, err := s.users.FindByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return model.TokenPair{}, model.ErrInvalidCredentials
		}
		return model.TokenPair{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return model.TokenPair{}, model.ErrInvalidCredentials
	}

	pair, err := s.issueTokenPair(user)
	if err != nil {
		return model.TokenPair{}, err
	}

	if err := s.users.SetRefreshTokenHash(ctx, user.ID, hashRefreshToken(pair.RefreshToken)); err != nil {
		return model.TokenPair{}, err
	}

	return pair, nil
}

// Refresh runs the rotation protocol: verify signature and purpose,
// verify the presented token is the current one, then atomically swap
// the stored hash for the new token's hash. A replayed rotated-out
// token is treated as theft: the stored hash is invalidated so every
// session must log in again.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (model.TokenPair, error) {
	claims, err := s.issuer.Verify(refreshToken, token.PurposeRefresh)
	if err != nil {
		return model.TokenPair{}, model.ErrTokenInvalid
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return model.TokenPair{}, model.ErrTokenInvalid
		}
		return model.TokenPair{}, err
	}

	presentedHash := hashRefreshToken(refreshToken)

	if user.RefreshTokenHash == nil {
		// Logged out: nothing to rotate, nothing left to revoke.
		return model.TokenPair{}, model.ErrTokenInvalid
	}

	if *user.RefreshTokenHash != presentedHash {
		slog.Warn("refresh token reuse detected; revoking session", "user_id", user.ID)
		if err := s.users.ClearRefreshTokenHash(ctx, user.ID); err != nil {
			return model.TokenPair{}, err
		}
		return model.TokenPair{}, model.ErrTokenReuse
	}

	pair, err := s.issueTokenPair(user)
	if err != nil {
		return model.TokenPair{}, err
	}

	won, err := s.users.RotateRefreshTokenHash(ctx, user.ID, presentedHash, hashRefreshToken(pair.RefreshToken))
	if err != nil {
		return model.TokenPair{}, err
	}
	if !won {
		// A concurrent refresh rotated first; this token is spent.
		return model.TokenPair{}, model.ErrRotationConflict
	}

	return pair, nil
}

// Logout revokes the outstanding refresh token. Idempotent; issued
// access tokens ride out their short TTL.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	return s.users.ClearRefreshTokenHash(ctx, userID)
}

// ChangePassword re-verifies the current password, installs the new
// hash, and revokes the refresh token so stolen refresh tokens do not
// survive a credential change.
func (s *AuthService) ChangePassword(ctx context.Context, userID string, oldPassword string, newPassword string) error {
	if len(newPassword) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", model.ErrInvalidInput)
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return model.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return s.users.UpdatePassword(ctx, userID, string(hash))
}

// ResolvePrincipal verifies an access token and confirms the subject
// still exists, producing the request principal. Stateless apart from
// the one existence lookup; no token is re-issued here.
func (s *AuthService) ResolvePrincipal(ctx context.Context, accessToken string) (*model.Principal, error) {
	claims, err := s.issuer.Verify(accessToken, token.PurposeAccess)
	if err != nil {
		return nil, model.ErrUnauthenticated
	}

	if _, err := s.users.FindByID(ctx, claims.UserID); err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.ErrUnauthenticated
		}
		return nil, err
	}

	return &model.Principal{
		ID:        claims.UserID,
		IssuedAt:  claims.IssuedAt,
		ExpiresAt: claims.ExpiresAt,
	}, nil
}

func (s *AuthService) issueTokenPair(user model.User) (model.TokenPair, error) {
	accessToken, accessExp, err := s.issuer.IssueAccessToken(user.ID)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("issue access token: %w", err)
	}

	refreshToken, refreshExp, err := s.issuer.IssueRefreshToken(user.ID)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("issue refresh token: %w", err)
	}

	return model.TokenPair{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		AccessExpiresAt:  accessExp,
		RefreshExpiresAt: refreshExp,
		User:             user.Summary(),
	}, nil
}
