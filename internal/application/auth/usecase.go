package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/repairnotes-api/internal/application/dto"
	"github.com/jhoicas/repairnotes-api/internal/domain"
	"github.com/jhoicas/repairnotes-api/internal/domain/entity"
	"github.com/jhoicas/repairnotes-api/internal/domain/repository"
	"github.com/jhoicas/repairnotes-api/pkg/jwt"
)

// TokenIssuer emisión y verificación de tokens (implementado por *jwt.Issuer).
type TokenIssuer interface {
	IssueAccessToken(username string, roles []string) (string, error)
	IssueRefreshToken(username string) (string, error)
	VerifyRefresh(token string) (*jwt.RefreshClaims, error)
}

// AuthUseCase casos de uso de autenticación: login, refresh y logout.
type AuthUseCase struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	tokens      TokenIssuer
	now         func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth. now nil = time.Now.
func NewAuthUseCase(
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	tokens TokenIssuer,
	now func() time.Time,
) *AuthUseCase {
	if now == nil {
		now = time.Now
	}
	return &AuthUseCase{userRepo: userRepo, sessionRepo: sessionRepo, tokens: tokens, now: now}
}

// Login verifica username/password, emite ambos tokens y registra la sesión si el usuario no tiene una.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResult, error) {
	switch {
	case in.Username == "" && in.Password == "":
		return nil, domain.Invalid("Username & Password are Required")
	case in.Username == "":
		return nil, domain.Invalid("Username is Required")
	case in.Password == "":
		return nil, domain.Invalid("Password is Required")
	}

	user, err := uc.userRepo.FindByUsername(ctx, in.Username)
	if err != nil {
		return nil, fmt.Errorf("auth.Login: %w", err)
	}
	if user == nil {
		return nil, domain.NewError(domain.ErrUserNotFound, fmt.Sprintf("User %s not Found", in.Username))
	}
	if !user.Active {
		return nil, domain.Unauthorized(fmt.Sprintf("User %s is not Authorized", in.Username))
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.Unauthorized("Incorrect Password")
	}

	access, err := uc.tokens.IssueAccessToken(user.Username, entity.RoleStrings(user.Roles))
	if err != nil {
		return nil, fmt.Errorf("auth.Login: %w", err)
	}
	refresh, err := uc.tokens.IssueRefreshToken(user.Username)
	if err != nil {
		return nil, fmt.Errorf("auth.Login: %w", err)
	}

	// Una sesión por usuario: si ya existe, el store la conserva.
	_, err = uc.sessionRepo.CreateIfAbsent(ctx, &entity.Session{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Username:  user.Username,
		LoginTime: uc.now(),
	})
	if err != nil {
		return nil, fmt.Errorf("auth.Login: sesión: %w", err)
	}

	return &dto.LoginResult{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh emite un nuevo token de acceso a partir del refresh token de la cookie.
// Los roles se releen del store; el refresh token no rota y la sesión no se toca.
func (uc *AuthUseCase) Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	if refreshToken == "" {
		return nil, domain.Unauthorized("Unauthorized")
	}
	claims, err := uc.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, domain.Forbidden("Forbidden")
	}
	user, err := uc.userRepo.FindByUsername(ctx, claims.Username)
	if err != nil {
		return nil, fmt.Errorf("auth.Refresh: %w", err)
	}
	if user == nil {
		return nil, domain.Unauthorized("Unauthorized")
	}
	access, err := uc.tokens.IssueAccessToken(user.Username, entity.RoleStrings(user.Roles))
	if err != nil {
		return nil, fmt.Errorf("auth.Refresh: %w", err)
	}
	return &dto.TokenResponse{AccessToken: access}, nil
}

// Logout elimina la sesión del usuario identificado por el refresh token.
// El token se decodifica sin verificar firma ni expiración: logout no autoriza nada,
// sólo limpia el registro de sesiones. Un token ilegible no es error.
func (uc *AuthUseCase) Logout(ctx context.Context, refreshToken string) error {
	claims, err := jwt.Decode(refreshToken)
	if err != nil || claims.Username == "" {
		return nil
	}
	if err := uc.sessionRepo.DeleteByUsername(ctx, claims.Username); err != nil {
		return fmt.Errorf("auth.Logout: %w", err)
	}
	return nil
}
