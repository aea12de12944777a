package services

import (
	"context"
	"errors"
	"fmt"
	"time"
	"tratrouble_server/lib"
	"tratrouble_server/structs"
	"tratrouble_server/structs/tables"

	"github.com/MonkyMars/gecho"
)

// Clock abstracts time.Now so expiry logic is testable
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns the wall clock
func SystemClock() Clock { return systemClock{} }

// VerificationStore persists issued tokens. FindByToken returns nil, nil when
// no record matches. Save under the overwrite policy must only displace
// PENDING records and return ErrAlreadyVerified when the address already holds
// a verified one. MarkVerified must flip verified=false records atomically
// and report how many rows it touched, so racing confirmations cannot both win.
type VerificationStore interface {
	FindByToken(ctx context.Context, token string) (*tables.EmailVerification, error)
	Save(ctx context.Context, record *tables.EmailVerification) (*tables.EmailVerification, error)
	MarkVerified(ctx context.Context, token string) (int, error)
}

// VerificationMailer delivers the verification link to the claimed address
type VerificationMailer interface {
	SendVerificationEmail(to, link string, expiresAt time.Time) error
}

// TokenStatusCache is an optional positive cache of verified tokens, so
// clients polling check-token stay off the database
type TokenStatusCache interface {
	SetTokenVerified(token string) error
	IsTokenVerified(token string) (bool, error)
}

type VerificationService struct {
	logger *gecho.Logger
	cfg    *structs.Config
	store  VerificationStore
	mailer VerificationMailer
	clock  Clock
	cache  TokenStatusCache // may be nil
	secret []byte
}

func NewVerificationService(
	cfg *structs.Config,
	logger *gecho.Logger,
	store VerificationStore,
	mailer VerificationMailer,
	clock Clock,
	cache TokenStatusCache,
) *VerificationService {
	return &VerificationService{
		logger: logger,
		cfg:    cfg,
		store:  store,
		mailer: mailer,
		clock:  clock,
		cache:  cache,
		secret: []byte(cfg.Verification.SecretKey),
	}
}

// SubmitEmail issues a fresh pending token for the claimed address and mails
// the verification link. The token is returned for internal use only and must
// never reach the HTTP response; a rider proves ownership by following the
// link, not by reading the submit response.
func (vs *VerificationService) SubmitEmail(ctx context.Context, email, platform, deviceID string) (string, error) {
	if email == "" {
		return "", lib.NewValidationError("email", "is required")
	}
	if platform == "" {
		platform = "web"
	}

	now := vs.clock.Now()

	token, err := lib.SignToken(vs.secret, email, deviceID, now)
	if err != nil {
		vs.logger.Error("Failed to sign verification token", gecho.Field("error", err))
		return "", err
	}

	record := &tables.EmailVerification{
		Email:     email,
		Token:     token,
		DeviceId:  deviceID,
		Platform:  platform,
		Verified:  false,
		CreatedAt: now,
		ExpiresAt: now.Add(vs.cfg.Verification.TokenTTL),
	}

	if _, err := vs.store.Save(ctx, record); err != nil {
		err = lib.MapPgError(err)
		if errors.Is(err, lib.ErrAlreadyVerified) || lib.IsUniqueViolation(err) {
			vs.logger.Warn("Submission rejected by verification state",
				gecho.Field("error", err),
				gecho.Field("email", email),
			)
		} else {
			vs.logger.Error("Failed to store verification record",
				gecho.Field("error", err),
				gecho.Field("email", email),
			)
		}
		return "", err
	}

	link := fmt.Sprintf("%s/verify-email/?token=%s", vs.cfg.Email.VerificationBaseURL, token)

	// Dispatch synchronously: a pending record whose email never went out must
	// surface as an error, not as silent partial success.
	if err := vs.mailer.SendVerificationEmail(email, link, record.ExpiresAt); err != nil {
		vs.logger.Error("Failed to send verification email",
			gecho.Field("error", err),
			gecho.Field("email", email),
		)
		return "", err
	}

	vs.logger.Info("Verification email sent",
		gecho.Field("email", email),
		gecho.Field("platform", platform),
		gecho.Field("expires_at", record.ExpiresAt),
	)

	return token, nil
}

// ConfirmToken transitions a pending record to verified. Replayed links are
// rejected with ErrAlreadyVerified, expiry is judged against the injected
// clock, and a device binding captured at issuance must match the confirming
// device. Exactly one of two racing confirmations succeeds.
func (vs *VerificationService) ConfirmToken(ctx context.Context, token, deviceID string) error {
	record, err := vs.store.FindByToken(ctx, token)
	if err != nil {
		vs.logger.Error("Failed to look up verification record", gecho.Field("error", err))
		return lib.MapPgError(err)
	}
	if record == nil {
		return lib.ErrTokenNotFound
	}

	if record.Verified {
		return lib.ErrAlreadyVerified
	}

	if vs.clock.Now().After(record.ExpiresAt) {
		return lib.ErrExpiredToken
	}

	// Binding is enforced only when a device id was captured at issuance;
	// verification from a device that never identified itself stays possible.
	if vs.cfg.Verification.DeviceBinding && record.DeviceId != "" && record.DeviceId != deviceID {
		vs.logger.Warn("Device mismatch during verification",
			gecho.Field("email", record.Email),
			gecho.Field("platform", record.Platform),
		)
		return lib.ErrDeviceMismatch
	}

	affected, err := vs.store.MarkVerified(ctx, token)
	if err != nil {
		vs.logger.Error("Failed to mark token verified", gecho.Field("error", err))
		return lib.MapPgError(err)
	}
	if affected == 0 {
		// A concurrent confirmation won the conditional update.
		return lib.ErrAlreadyVerified
	}

	if vs.cache != nil {
		if err := vs.cache.SetTokenVerified(token); err != nil {
			vs.logger.Warn("Failed to cache verified token status", gecho.Field("error", err))
		}
	}

	vs.logger.Info("Email verified successfully",
		gecho.Field("email", record.Email),
		gecho.Field("platform", record.Platform),
	)

	return nil
}

// Lookup fetches a record by token for the authorization gate
func (vs *VerificationService) Lookup(ctx context.Context, token string) (*tables.EmailVerification, error) {
	record, err := vs.store.FindByToken(ctx, token)
	if err != nil {
		vs.logger.Error("Failed to look up verification record", gecho.Field("error", err))
		return nil, lib.MapPgError(err)
	}
	if record == nil {
		return nil, lib.ErrTokenNotFound
	}
	return record, nil
}

// Authorize is the gate in front of protected actions: the token must exist
// and be verified. Device binding is not re-checked here; once verified, a
// token is usable from any device.
func (vs *VerificationService) Authorize(ctx context.Context, token string) (*tables.EmailVerification, error) {
	if token == "" {
		return nil, lib.ErrMissingToken
	}

	record, err := vs.Lookup(ctx, token)
	if err != nil {
		return nil, err
	}

	if !record.Verified {
		return nil, lib.ErrNotVerified
	}

	return record, nil
}

// CheckStatus is the read-only polling probe behind check-token. Verified
// tokens are answered from the status cache when one is wired.
func (vs *VerificationService) CheckStatus(ctx context.Context, token string) error {
	if token == "" {
		return lib.ErrMissingToken
	}

	if vs.cache != nil {
		verified, err := vs.cache.IsTokenVerified(token)
		if err != nil {
			vs.logger.Warn("Token status cache read failed", gecho.Field("error", err))
		} else if verified {
			return nil
		}
	}

	record, err := vs.Lookup(ctx, token)
	if err != nil {
		return err
	}

	if !record.Verified {
		return lib.ErrNotVerified
	}

	if vs.cache != nil {
		if err := vs.cache.SetTokenVerified(token); err != nil {
			vs.logger.Warn("Failed to cache verified token status", gecho.Field("error", err))
		}
	}

	return nil
}
