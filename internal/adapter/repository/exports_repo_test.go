package repository

import (
	"context"
	"testing"
	"time"

	"resume-builder/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestExportsRepo_NilPoolIsNoop(t *testing.T) {
	r := NewExportsRepo(nil)
	assert.False(t, r.Enabled())

	err := r.Save(context.Background(), &domain.ExportEvent{ID: uuid.New(), CreatedAt: time.Now()})
	assert.NoError(t, err)

	_, err = r.Stats(context.Background())
	assert.ErrorIs(t, err, ErrNoDatabase)
}
