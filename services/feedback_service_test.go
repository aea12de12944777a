package services

import (
	"context"
	"sync"
	"testing"
	"time"
	"tratrouble_server/database"
	"tratrouble_server/lib"
	"tratrouble_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFeedbackStore struct {
	mu      sync.Mutex
	records []tables.Feedback
}

func (s *fakeFeedbackStore) Insert(ctx context.Context, record *tables.Feedback) (*tables.Feedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, *record)
	return record, nil
}

func (s *fakeFeedbackStore) Get(ctx context.Context, id uuid.UUID) (*tables.Feedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].Id == id {
			rec := s.records[i]
			return &rec, nil
		}
	}
	return nil, nil
}

func (s *fakeFeedbackStore) List(ctx context.Context, page, pageSize int) (*database.PaginationResult[tables.Feedback], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &database.PaginationResult[tables.Feedback]{
		Data: append([]tables.Feedback(nil), s.records...),
		Pagination: database.Pagination{
			Page:     page,
			PageSize: pageSize,
			Total:    len(s.records),
		},
	}, nil
}

func TestSubmitFeedback(t *testing.T) {
	store := &fakeFeedbackStore{}
	clock := &fakeClock{now: time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)}
	service := NewFeedbackService(gecho.NewDefaultLogger(), store, clock)

	record, err := service.Submit(context.Background(), "sometoken", "Tram 5", "Central Station", "52.3676,4.9041")
	require.NoError(t, err)

	assert.Equal(t, "sometoken", record.Token)
	assert.Equal(t, clock.Now(), record.Timestamp, "timestamp is assigned server-side")
	require.Len(t, store.records, 1)
}

func TestSubmitFeedbackMissingFields(t *testing.T) {
	store := &fakeFeedbackStore{}
	service := NewFeedbackService(gecho.NewDefaultLogger(), store, SystemClock())

	cases := []struct {
		name                                  string
		token, line, destination, geoLocation string
	}{
		{"missing token", "", "Tram 5", "Central Station", "52.3,4.9"},
		{"missing line", "sometoken", "", "Central Station", "52.3,4.9"},
		{"missing destination", "sometoken", "Tram 5", "", "52.3,4.9"},
		{"missing geolocation", "sometoken", "Tram 5", "Central Station", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.Submit(context.Background(), tc.token, tc.line, tc.destination, tc.geoLocation)

			var vErr *lib.ValidationError
			require.ErrorAs(t, err, &vErr)
		})
	}

	assert.Empty(t, store.records)
}

func TestSubmitFeedbackRepeatable(t *testing.T) {
	store := &fakeFeedbackStore{}
	service := NewFeedbackService(gecho.NewDefaultLogger(), store, SystemClock())

	for range 3 {
		_, err := service.Submit(context.Background(), "sometoken", "Tram 5", "Central Station", "52.3,4.9")
		require.NoError(t, err)
	}

	assert.Len(t, store.records, 3, "one verified token may submit repeatedly")
}

func TestGetFeedback(t *testing.T) {
	id := uuid.New()
	store := &fakeFeedbackStore{records: []tables.Feedback{{
		Id:   id,
		Line: "Tram 5",
	}}}
	service := NewFeedbackService(gecho.NewDefaultLogger(), store, SystemClock())

	record, err := service.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Tram 5", record.Line)

	_, err = service.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, lib.ErrNotFound)
}
