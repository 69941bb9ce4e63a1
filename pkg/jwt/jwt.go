// Package jwt emite y verifica los tokens de acceso y de refresco.
//
// Los dos tipos de token se firman con secretos distintos (HS256) y tienen
// duraciones independientes: el de acceso viaja en el header Authorization y
// el de refresco sólo en la cookie httpOnly "jwt".
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Duraciones por defecto.
const (
	DefaultAccessTTL  = 15 * time.Minute
	DefaultRefreshTTL = 7 * 24 * time.Hour
)

// Errores de verificación.
var (
	ErrTokenExpired = errors.New("jwt: token expirado")
	ErrTokenInvalid = errors.New("jwt: token inválido")
	ErrEmptySecret  = errors.New("jwt: secret vacío")
)

// UserInfo identidad y roles que viajan en el token de acceso.
type UserInfo struct {
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
}

// AccessClaims claims del token de acceso: {UserInfo: {username, roles}, exp}.
type AccessClaims struct {
	UserInfo UserInfo `json:"UserInfo"`
	jwt.RegisteredClaims
}

// RefreshClaims claims del token de refresco: {username, exp}.
type RefreshClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Config secretos y duraciones del emisor.
type Config struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	// Now reloj inyectable; nil = time.Now.
	Now func() time.Time
}

// Issuer emite y verifica tokens. Es seguro para uso concurrente.
type Issuer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

// NewIssuer construye el emisor validando que ambos secretos existan.
func NewIssuer(cfg Config) (*Issuer, error) {
	if cfg.AccessSecret == "" || cfg.RefreshSecret == "" {
		return nil, ErrEmptySecret
	}
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = DefaultAccessTTL
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = DefaultRefreshTTL
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Issuer{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		accessTTL:     cfg.AccessTTL,
		refreshTTL:    cfg.RefreshTTL,
		now:           cfg.Now,
	}, nil
}

// RefreshTTL duración del token de refresco (la usa el handler para el maxAge de la cookie).
func (i *Issuer) RefreshTTL() time.Duration { return i.refreshTTL }

// IssueAccessToken firma un token de acceso con username y roles.
func (i *Issuer) IssueAccessToken(username string, roles []string) (string, error) {
	now := i.now()
	if roles == nil {
		roles = []string{}
	}
	claims := AccessClaims{
		UserInfo: UserInfo{Username: username, Roles: roles},
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.accessTTL)),
		},
	}
	return sign(claims, i.accessSecret)
}

// IssueRefreshToken firma un token de refresco que sólo lleva el username.
func (i *Issuer) IssueRefreshToken(username string) (string, error) {
	now := i.now()
	claims := RefreshClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.refreshTTL)),
		},
	}
	return sign(claims, i.refreshSecret)
}

// VerifyAccess valida firma y expiración de un token de acceso.
func (i *Issuer) VerifyAccess(token string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if err := Verify(token, i.accessSecret, claims, i.now); err != nil {
		return nil, err
	}
	return claims, nil
}

// VerifyRefresh valida firma y expiración de un token de refresco.
func (i *Issuer) VerifyRefresh(token string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	if err := Verify(token, i.refreshSecret, claims, i.now); err != nil {
		return nil, err
	}
	if claims.Username == "" {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// Verify parsea token con el secreto dado y rellena claims.
// Devuelve ErrTokenExpired o ErrTokenInvalid; nunca el error crudo de la librería.
func Verify(token string, secret []byte, claims jwt.Claims, now func() time.Time) error {
	if len(secret) == 0 {
		return ErrEmptySecret
	}
	if now == nil {
		now = time.Now
	}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(now),
	)
	parsed, err := parser.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrTokenExpired
		}
		return fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	if !parsed.Valid {
		return ErrTokenInvalid
	}
	return nil
}

// Decode extrae los claims de un token de refresco SIN verificar la firma.
// Sólo sirve para identificar al usuario en el logout; nunca para autorizar.
func Decode(token string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	return claims, nil
}

func sign(claims jwt.Claims, secret []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("jwt: firmar token: %w", err)
	}
	return signed, nil
}
