package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/yungbote/navgraph/internal/platform/ctxutil"
	"github.com/yungbote/navgraph/internal/platform/logger"
)

func TestAuthTokenRoundTrip(t *testing.T) {
	svc := NewAuthService(logger.Nop(), "test-secret")
	token, err := svc.IssueToken("42", []string{"editor", "authenticated"}, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	ctx, err := svc.SetContextFromToken(context.Background(), token)
	if err != nil {
		t.Fatalf("SetContextFromToken: %v", err)
	}
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.UserID != "42" || len(rd.Roles) != 2 {
		t.Fatalf("unexpected principal: %+v", rd)
	}
}

func TestAuthDefaultsRoles(t *testing.T) {
	svc := NewAuthService(logger.Nop(), "test-secret")
	token, err := svc.IssueToken("7", nil, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	ctx, err := svc.SetContextFromToken(context.Background(), token)
	if err != nil {
		t.Fatalf("SetContextFromToken: %v", err)
	}
	if rd := ctxutil.GetRequestData(ctx); len(rd.Roles) != 1 || rd.Roles[0] != "authenticated" {
		t.Fatalf("expected the authenticated role, got %+v", rd.Roles)
	}
}

func TestAuthRejectsBadTokens(t *testing.T) {
	svc := NewAuthService(logger.Nop(), "test-secret")
	other := NewAuthService(logger.Nop(), "other-secret")

	foreign, _ := other.IssueToken("1", nil, time.Hour)
	expired, _ := svc.IssueToken("1", nil, -time.Minute)
	noSubject, _ := svc.IssueToken("", nil, time.Hour)
	none, _ := jwt.NewWithClaims(jwt.SigningMethodNone, JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "1"},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)

	cases := map[string]string{
		"garbage":    "not-a-token",
		"foreign":    foreign,
		"expired":    expired,
		"no subject": noSubject,
		"alg none":   none,
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := svc.SetContextFromToken(context.Background(), token); !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

func TestAuthWithoutSecretRejectsEverything(t *testing.T) {
	svc := NewAuthService(logger.Nop(), "")
	if _, err := svc.IssueToken("1", nil, time.Hour); err == nil {
		t.Fatalf("issuing without a key must fail")
	}
	signed, _ := NewAuthService(logger.Nop(), "k").IssueToken("1", nil, time.Hour)
	if _, err := svc.SetContextFromToken(context.Background(), signed); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestSetAnonymousReusesRequestData(t *testing.T) {
	svc := NewAuthService(logger.Nop(), "")
	rd := &ctxutil.RequestData{VisitID: 9, HasVisit: true}
	ctx := svc.SetAnonymous(ctxutil.WithRequestData(context.Background(), rd))

	got := ctxutil.GetRequestData(ctx)
	if got != rd {
		t.Fatalf("existing request data must be reused")
	}
	if got.UserID != AnonymousUserID || len(got.Roles) != 1 || got.Roles[0] != AnonymousRole {
		t.Fatalf("unexpected anonymous principal: %+v", got)
	}
}
