package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-bookstore/internal/event"
	"go-bookstore/internal/logger"
	"go-bookstore/internal/model"
	"go-bookstore/pkg/apierror"
	"go-bookstore/pkg/password"
	"go-bookstore/pkg/token"
)

const tokenTypeBearer = "bearer"

// dummySecret is verified against when the identifier is unknown so that
// rejected logins cost one bcrypt comparison either way.
const dummySecret = "go-bookstore-timing-equalizer"

// UserStore looks up the stored credential for a login identifier.
// It returns model.ErrSellerNotFound when no record exists.
type UserStore interface {
	FindByIdentifier(ctx context.Context, identifier string) (model.PasswordRecord, error)
}

type passwordHasher interface {
	Hash(secret string) (string, error)
	Verify(secret string, hash string) (bool, error)
}

type tokenCodec interface {
	Issue(subject string, ttl time.Duration) (string, error)
	Decode(raw string) (token.Claims, error)
}

type AuthService struct {
	store     UserStore
	hasher    passwordHasher
	codec     tokenCodec
	ttl       time.Duration
	bus       event.Bus
	dummyHash string
}

func NewAuthService(store UserStore, hasher passwordHasher, codec tokenCodec, ttl time.Duration, bus event.Bus) (*AuthService, error) {
	if ttl <= 0 {
		return nil, fmt.Errorf("token ttl must be positive, got %s", ttl)
	}

	dummy, err := hasher.Hash(dummySecret)
	if err != nil {
		return nil, fmt.Errorf("prepare dummy hash: %w", err)
	}

	return &AuthService{
		store:     store,
		hasher:    hasher,
		codec:     codec,
		ttl:       ttl,
		bus:       bus,
		dummyHash: dummy,
	}, nil
}

func errInvalidCredentials() error {
	return apierror.Unauthorized("invalid credentials")
}

func errInvalidToken() error {
	return apierror.Unauthorized("could not validate credentials")
}

// Login checks the secret against the stored record and issues an access
// token on success. Unknown identifiers and wrong secrets are
// indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, identifier string, secret string) (model.TokenResponse, error) {
	log := logger.FromContext(ctx)
	identifier = normalizeIdentifier(identifier)

	rec, err := s.store.FindByIdentifier(ctx, identifier)
	if errors.Is(err, model.ErrSellerNotFound) {
		_, _ = s.hasher.Verify(secret, s.dummyHash)
		log.Warn("login rejected", "identifier", identifier, "kind", "unknown_identifier")
		s.publish(ctx, event.TypeLoginRejected, model.AuthActionLogin, identifier, model.AuthStatusRejected, "unknown_identifier")
		return model.TokenResponse{}, errInvalidCredentials()
	}
	if err != nil {
		return model.TokenResponse{}, fmt.Errorf("lookup credentials: %w", err)
	}

	ok, err := s.hasher.Verify(secret, rec.Hash)
	if err != nil {
		log.Error("stored password hash is unusable", "seller_id", rec.SellerID, "error", err)
		return model.TokenResponse{}, fmt.Errorf("verify credentials for seller %d: %w", rec.SellerID, err)
	}
	if !ok {
		log.Warn("login rejected", "identifier", identifier, "kind", "bad_credentials")
		s.publish(ctx, event.TypeLoginRejected, model.AuthActionLogin, identifier, model.AuthStatusRejected, "bad_credentials")
		return model.TokenResponse{}, errInvalidCredentials()
	}

	subject := normalizeIdentifier(rec.Identifier)
	raw, err := s.codec.Issue(subject, s.ttl)
	if err != nil {
		return model.TokenResponse{}, fmt.Errorf("issue token: %w", err)
	}

	log.Info("login succeeded", "seller_id", rec.SellerID)
	s.publish(ctx, event.TypeLoginSucceeded, model.AuthActionLogin, subject, model.AuthStatusSucceeded, "")

	return model.TokenResponse{AccessToken: raw, TokenType: tokenTypeBearer}, nil
}

// Resolve turns a presented bearer token into the principal it names.
// Every decode failure and unknown subject yields the same Unauthorized
// error; the specific kind is only logged.
func (s *AuthService) Resolve(ctx context.Context, raw string) (model.Principal, error) {
	log := logger.FromContext(ctx)

	claims, err := s.codec.Decode(raw)
	if err != nil {
		kind := decodeFailureKind(err)
		log.Warn("token rejected", "kind", kind)
		s.publish(ctx, event.TypeTokenRejected, model.AuthActionTokenReject, "", model.AuthStatusRejected, kind)
		return model.Principal{}, errInvalidToken()
	}

	rec, err := s.store.FindByIdentifier(ctx, claims.Subject)
	if errors.Is(err, model.ErrSellerNotFound) {
		log.Warn("token rejected", "kind", "unknown_subject", "identifier", claims.Subject)
		s.publish(ctx, event.TypeTokenRejected, model.AuthActionTokenReject, claims.Subject, model.AuthStatusRejected, "unknown_subject")
		return model.Principal{}, errInvalidToken()
	}
	if err != nil {
		return model.Principal{}, fmt.Errorf("resolve principal: %w", err)
	}

	return model.Principal{SellerID: rec.SellerID, Identifier: normalizeIdentifier(rec.Identifier)}, nil
}

func (s *AuthService) publish(ctx context.Context, typ event.Type, action string, identifier string, status string, reason string) {
	if s.bus == nil {
		return
	}

	meta := model.RequestMetaFrom(ctx)
	s.bus.Publish(event.Event{
		Type: typ,
		Auth: model.AuthEvent{
			Action:     action,
			Identifier: identifier,
			Status:     status,
			Reason:     reason,
			ClientIP:   meta.ClientIP,
			RequestID:  meta.RequestID,
			OccurredAt: time.Now().UTC(),
		},
	})
}

func decodeFailureKind(err error) string {
	switch {
	case errors.Is(err, token.ErrExpired):
		return "expired"
	case errors.Is(err, token.ErrInvalidSignature):
		return "invalid_signature"
	case errors.Is(err, token.ErrMissingSubject):
		return "missing_subject"
	case errors.Is(err, token.ErrMalformed):
		return "malformed"
	default:
		return "unknown"
	}
}

func normalizeIdentifier(identifier string) string {
	return strings.ToLower(strings.TrimSpace(identifier))
}

var _ passwordHasher = (*password.Hasher)(nil)
var _ tokenCodec = (*token.Codec)(nil)
