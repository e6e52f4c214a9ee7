package jwt

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/piresc/mycompta/internal/pkg/apperror"
	"github.com/piresc/mycompta/internal/pkg/models"
)

// Verification failures. All of them are apperror.ErrAuth.
var (
	ErrInvalidToken = fmt.Errorf("%w: invalid token", apperror.ErrAuth)
	ErrExpiredToken = fmt.Errorf("%w: token expired", apperror.ErrAuth)
	ErrMissingUID   = fmt.Errorf("%w: invalid token: no uid", apperror.ErrAuth)
	ErrBackend      = fmt.Errorf("%w: token verification failed", apperror.ErrAuth)
)

// GenerateToken signs an HS256 token carrying userID as uid and sub
func GenerateToken(userID string, cfg models.JWTConfig) (string, int64, error) {
	secret, err := LoadSecret(cfg)
	if err != nil {
		return "", 0, err
	}

	expiresAt := time.Now().Add(time.Duration(cfg.Expiration) * time.Minute).Unix()
	claims := jwt.MapClaims{
		"uid": userID,
		"sub": userID,
		"exp": expiresAt,
		"iat": time.Now().Unix(),
	}
	if cfg.Issuer != "" {
		claims["iss"] = cfg.Issuer
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(secret)
	if err != nil {
		return "", 0, err
	}

	return tokenString, expiresAt, nil
}

// LoadSecret returns the signing secret, read from cfg.CredentialsPath when set
func LoadSecret(cfg models.JWTConfig) ([]byte, error) {
	if cfg.CredentialsPath != "" {
		raw, err := os.ReadFile(cfg.CredentialsPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read credentials file: %w", err)
		}
		secret := strings.TrimSpace(string(raw))
		if secret == "" {
			return nil, errors.New("credentials file is empty")
		}
		return []byte(secret), nil
	}
	if cfg.Secret == "" {
		return nil, errors.New("jwt secret is not configured")
	}
	return []byte(cfg.Secret), nil
}

// Verifier validates bearer tokens and yields the caller identity
type Verifier struct {
	secret []byte
	issuer string
}

// NewVerifier builds a verifier from config
func NewVerifier(cfg models.JWTConfig) (*Verifier, error) {
	secret, err := LoadSecret(cfg)
	if err != nil {
		return nil, err
	}
	return &Verifier{secret: secret, issuer: cfg.Issuer}, nil
}

// VerifyToken checks signature, expiry and issuer, and returns the uid claim
// (falling back to sub)
func (v *Verifier) VerifyToken(ctx context.Context, tokenString string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrBackend, err)
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpiredToken
		}
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", ErrInvalidToken
	}

	if v.issuer != "" && !claims.VerifyIssuer(v.issuer, true) {
		return "", fmt.Errorf("%w: unexpected issuer", ErrInvalidToken)
	}

	uid, _ := claims["uid"].(string)
	if uid == "" {
		uid, _ = claims["sub"].(string)
	}
	if uid == "" {
		return "", ErrMissingUID
	}

	return uid, nil
}
