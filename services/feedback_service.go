package services

import (
	"context"
	"tratrouble_server/database"
	"tratrouble_server/lib"
	"tratrouble_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

// FeedbackStore persists rider feedback entries
type FeedbackStore interface {
	Insert(ctx context.Context, record *tables.Feedback) (*tables.Feedback, error)
	Get(ctx context.Context, id uuid.UUID) (*tables.Feedback, error)
	List(ctx context.Context, page, pageSize int) (*database.PaginationResult[tables.Feedback], error)
}

type FeedbackService struct {
	logger *gecho.Logger
	store  FeedbackStore
	clock  Clock
}

func NewFeedbackService(logger *gecho.Logger, store FeedbackStore, clock Clock) *FeedbackService {
	return &FeedbackService{
		logger: logger,
		store:  store,
		clock:  clock,
	}
}

// Submit persists one feedback entry stamped with the authorizing token.
// Callers must have passed the authorization gate first; repeated submissions
// with the same token are allowed by design.
func (fs *FeedbackService) Submit(ctx context.Context, token, line, destination, geoLocation string) (*tables.Feedback, error) {
	if token == "" || line == "" || destination == "" || geoLocation == "" {
		return nil, lib.NewValidationError("feedback", "all fields are required")
	}

	record := &tables.Feedback{
		Token:       token,
		Line:        line,
		Destination: destination,
		GeoLocation: geoLocation,
		Timestamp:   fs.clock.Now(),
	}

	record, err := fs.store.Insert(ctx, record)
	if err != nil {
		fs.logger.Error("Failed to store feedback", gecho.Field("error", err))
		return nil, lib.MapPgError(err)
	}

	fs.logger.Info("Feedback submitted",
		gecho.Field("line", line),
		gecho.Field("destination", destination),
	)

	return record, nil
}

// Get returns a single feedback entry by id.
func (fs *FeedbackService) Get(ctx context.Context, id uuid.UUID) (*tables.Feedback, error) {
	record, err := fs.store.Get(ctx, id)
	if err != nil {
		fs.logger.Error("Failed to fetch feedback", gecho.Field("error", err), gecho.Field("id", id.String()))
		return nil, lib.MapPgError(err)
	}
	if record == nil {
		return nil, lib.ErrNotFound
	}
	return record, nil
}

// List returns a page of feedback entries, newest first, for the admin surface
func (fs *FeedbackService) List(ctx context.Context, page, pageSize int) (*database.PaginationResult[tables.Feedback], error) {
	result, err := fs.store.List(ctx, page, pageSize)
	if err != nil {
		fs.logger.Error("Failed to list feedback", gecho.Field("error", err))
		return nil, lib.MapPgError(err)
	}
	return result, nil
}

// PostgresFeedbackStore is the production FeedbackStore
type PostgresFeedbackStore struct {
	db *database.DB
}

func NewPostgresFeedbackStore(db *database.DB) *PostgresFeedbackStore {
	return &PostgresFeedbackStore{db: db}
}

func (s *PostgresFeedbackStore) Insert(ctx context.Context, record *tables.Feedback) (*tables.Feedback, error) {
	return database.Query[tables.Feedback](s.db).Insert(ctx, record)
}

func (s *PostgresFeedbackStore) Get(ctx context.Context, id uuid.UUID) (*tables.Feedback, error) {
	return database.FindByID[tables.Feedback](s.db, ctx, id)
}

func (s *PostgresFeedbackStore) List(ctx context.Context, page, pageSize int) (*database.PaginationResult[tables.Feedback], error) {
	q := database.Query[tables.Feedback](s.db).
		OrderBy("timestamp", database.DESC)
	return database.Paginate(q, ctx, page, pageSize)
}
