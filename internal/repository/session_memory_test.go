package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prepgenie/prepgenie-backend/internal/entity"
)

func TestSessionMemoryLifecycle(t *testing.T) {
	repo := NewSessionMemory(time.Hour, time.Hour)
	ctx := context.Background()

	created, err := repo.CreateSession(ctx, &entity.Session{ID: "s-1"})
	require.NoError(t, err)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	fetched, err := repo.GetSessionByID(ctx, "s-1")
	require.NoError(t, err)
	assert.Equal(t, "s-1", fetched.ID)

	fetched.Mode = entity.ModePractice
	updated, err := repo.UpdateSession(ctx, fetched)
	require.NoError(t, err)
	assert.Equal(t, entity.ModePractice, updated.Mode)
	assert.False(t, updated.UpdatedAt.Before(updated.CreatedAt))

	require.NoError(t, repo.DeleteSession(ctx, "s-1"))
	_, err = repo.GetSessionByID(ctx, "s-1")
	require.ErrorIs(t, err, entity.ErrSessionNotFound)
}

func TestSessionMemoryHandsOutIndependentCopies(t *testing.T) {
	repo := NewSessionMemory(time.Hour, time.Hour)
	ctx := context.Background()

	created, err := repo.CreateSession(ctx, &entity.Session{
		ID:        "s-copy",
		Mode:      entity.ModeLearn,
		Questions: []entity.Question{{Text: "How would you shard a counter?", Category: entity.CategoryTechnical}},
		Answers:   []string{""},
	})
	require.NoError(t, err)

	// Scribbling on the caller's struct must not leak into the store.
	created.Mode = entity.ModePractice
	created.Answers[0] = "scribbled"

	fetched, err := repo.GetSessionByID(ctx, "s-copy")
	require.NoError(t, err)
	assert.Equal(t, entity.ModeLearn, fetched.Mode)
	assert.Equal(t, "", fetched.Answers[0])

	// Two readers never share a struct either.
	other, err := repo.GetSessionByID(ctx, "s-copy")
	require.NoError(t, err)
	fetched.Answers[0] = "first reader"
	fetched.Evaluations = append(fetched.Evaluations, entity.EvaluationResult{Question: "Q"})
	assert.Equal(t, "", other.Answers[0])
	assert.Empty(t, other.Evaluations)

	// Mutations land only through UpdateSession.
	other.Answers[0] = "typed answer"
	_, err = repo.UpdateSession(ctx, other)
	require.NoError(t, err)

	final, err := repo.GetSessionByID(ctx, "s-copy")
	require.NoError(t, err)
	assert.Equal(t, "typed answer", final.Answers[0])
}

func TestSessionMemoryMissingSession(t *testing.T) {
	repo := NewSessionMemory(time.Hour, time.Hour)
	ctx := context.Background()

	_, err := repo.GetSessionByID(ctx, "missing")
	require.ErrorIs(t, err, entity.ErrSessionNotFound)

	_, err = repo.UpdateSession(ctx, &entity.Session{ID: "missing"})
	require.ErrorIs(t, err, entity.ErrSessionNotFound)

	require.ErrorIs(t, repo.DeleteSession(ctx, "missing"), entity.ErrSessionNotFound)
}

func TestSessionMemoryIdleTTLEviction(t *testing.T) {
	repo := NewSessionMemory(30*time.Millisecond, time.Minute)
	ctx := context.Background()

	_, err := repo.CreateSession(ctx, &entity.Session{ID: "s-ttl"})
	require.NoError(t, err)

	time.Sleep(60 * time.Millisecond)

	_, err = repo.GetSessionByID(ctx, "s-ttl")
	require.ErrorIs(t, err, entity.ErrSessionNotFound)
}
