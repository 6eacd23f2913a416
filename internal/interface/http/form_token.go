package http

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/yanqian/listing-insights/internal/infra/config"
	apperrors "github.com/yanqian/listing-insights/pkg/errors"
	"github.com/yanqian/listing-insights/pkg/util"
)

const formTokenSubject = "listing-form"

// FormTokens signs and checks the hidden token rendered into the HTML form.
// With no secret configured both operations are no-ops.
type FormTokens struct {
	secret []byte
	ttl    time.Duration
	now    util.Clock
}

// NewFormTokens builds the token helper from config.
func NewFormTokens(cfg *config.Config) *FormTokens {
	return &FormTokens{
		secret: []byte(strings.TrimSpace(cfg.Form.TokenSecret)),
		ttl:    cfg.Form.TokenTTL,
		now:    util.NowUTC,
	}
}

// Enabled reports whether tokens are issued and checked.
func (t *FormTokens) Enabled() bool {
	return t != nil && len(t.secret) > 0
}

// Issue returns a fresh signed token, or "" when disabled.
func (t *FormTokens) Issue() (string, error) {
	if !t.Enabled() {
		return "", nil
	}
	now := t.now()
	claims := jwt.RegisteredClaims{
		Subject:   formTokenSubject,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign form token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, expiry and subject.
func (t *FormTokens) Verify(token string) error {
	if !t.Enabled() {
		return nil
	}
	if strings.TrimSpace(token) == "" {
		return apperrors.Wrap(apperrors.CodeInvalidToken, "form token missing", nil)
	}
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %s", tok.Method.Alg())
		}
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithSubject(formTokenSubject),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil || !parsed.Valid {
		return apperrors.Wrap(apperrors.CodeInvalidToken, "form token rejected", err)
	}
	return nil
}
