package services

import (
	"context"
	"tratrouble_server/database"
	"tratrouble_server/lib"
	"tratrouble_server/structs/tables"
)

// PostgresVerificationStore backs the verification state machine with the
// email_verifications table. The unique constraint on token is the last line
// of defense against a signed-token collision; the upsert policy decides
// whether a re-submission overwrites the prior pending record for an email.
type PostgresVerificationStore struct {
	db            *database.DB
	upsertByEmail bool
}

func NewPostgresVerificationStore(db *database.DB, upsertByEmail bool) *PostgresVerificationStore {
	return &PostgresVerificationStore{
		db:            db,
		upsertByEmail: upsertByEmail,
	}
}

func (s *PostgresVerificationStore) FindByToken(ctx context.Context, token string) (*tables.EmailVerification, error) {
	return database.Query[tables.EmailVerification](s.db).
		Where("token", token).
		First(ctx)
}

func (s *PostgresVerificationStore) Save(ctx context.Context, record *tables.EmailVerification) (*tables.EmailVerification, error) {
	if s.upsertByEmail {
		// Overwrite policy: a fresh submission invalidates the prior PENDING
		// link for the same address. Requires the unique index on email. The
		// guard keeps verified rows untouched: once verified, a record never
		// reverts, and the token-status cache stays truthful.
		saved, affected, err := database.Upsert(s.db, ctx, record, "email", "ev.verified = FALSE",
			"token", "device_id", "platform", "verified", "created_at", "expires_at")
		if err != nil {
			return nil, err
		}
		if affected == 0 {
			return nil, lib.ErrAlreadyVerified
		}
		return saved, nil
	}
	return database.Query[tables.EmailVerification](s.db).Insert(ctx, record)
}

func (s *PostgresVerificationStore) MarkVerified(ctx context.Context, token string) (int, error) {
	// Conditional flip: of two racing confirmations exactly one observes an
	// affected row, the other reads zero and reports already-verified.
	return database.Query[tables.EmailVerification](s.db).
		Where("token", token).
		Where("verified", false).
		Update(ctx, map[string]any{"verified": true})
}

// ListVerifications returns a page of verification records for the admin surface
func (s *PostgresVerificationStore) ListVerifications(ctx context.Context, page, pageSize int) (*database.PaginationResult[tables.EmailVerification], error) {
	q := database.Query[tables.EmailVerification](s.db).
		OrderBy("created_at", database.DESC)
	return database.Paginate(q, ctx, page, pageSize)
}
