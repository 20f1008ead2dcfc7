package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/yungbote/navgraph/internal/platform/ctxutil"
	"github.com/yungbote/navgraph/internal/platform/logger"
)

const (
	AnonymousUserID = "0"
	AnonymousRole   = "anonymous"
)

var ErrInvalidToken = errors.New("invalid token")

// JWTClaims carries the principal of the embedding application: the subject is
// the user id and Roles its role set.
type JWTClaims struct {
	Roles []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

type AuthService interface {
	// SetContextFromToken validates tokenString and attaches the principal to ctx.
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	// SetAnonymous attaches the anonymous principal to ctx.
	SetAnonymous(ctx context.Context) context.Context
	IssueToken(userID string, roles []string, ttl time.Duration) (string, error)
}

type authService struct {
	log          *logger.Logger
	jwtSecretKey string
}

func NewAuthService(log *logger.Logger, jwtSecretKey string) AuthService {
	serviceLog := log.With("service", "AuthService")
	if strings.TrimSpace(jwtSecretKey) == "" {
		serviceLog.Warn("JWT_SECRET_KEY not set; every request is anonymous")
	}
	return &authService{log: serviceLog, jwtSecretKey: jwtSecretKey}
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	claims, err := as.parse(tokenString)
	if err != nil {
		return ctx, err
	}
	uid := strings.TrimSpace(claims.Subject)
	if uid == "" {
		return ctx, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	roles := claims.Roles
	if len(roles) == 0 {
		roles = []string{"authenticated"}
	}
	return attachPrincipal(ctx, uid, roles), nil
}

func (as *authService) SetAnonymous(ctx context.Context) context.Context {
	return attachPrincipal(ctx, AnonymousUserID, []string{AnonymousRole})
}

func (as *authService) IssueToken(userID string, roles []string, ttl time.Duration) (string, error) {
	if as.jwtSecretKey == "" {
		return "", errors.New("JWT_SECRET_KEY not set")
	}
	now := time.Now()
	claims := JWTClaims{
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.jwtSecretKey))
}

func (as *authService) parse(tokenString string) (*JWTClaims, error) {
	if as.jwtSecretKey == "" {
		return nil, fmt.Errorf("%w: no signing key configured", ErrInvalidToken)
	}
	parsedToken, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(as.jwtSecretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := parsedToken.Claims.(*JWTClaims)
	if !ok || !parsedToken.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// attachPrincipal fills the request data already on ctx, or attaches a new one.
func attachPrincipal(ctx context.Context, uid string, roles []string) context.Context {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil {
		rd = &ctxutil.RequestData{}
		ctx = ctxutil.WithRequestData(ctx, rd)
	}
	rd.UserID = uid
	rd.Roles = append([]string(nil), roles...)
	return ctx
}
