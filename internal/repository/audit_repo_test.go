package repository

import (
	"context"
	"io"
	"testing"

	"coworkspace/internal/domain"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditRepository_LogAndFetch(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	audit := NewAuditRepository(db, logger)

	entry := &domain.StatusChange{
		AdminID:   1,
		Entity:    "booking",
		EntityID:  42,
		OldStatus: "pending",
		NewStatus: "confirmed",
	}
	require.NoError(t, audit.Log(ctx, entry))
	assert.NotEmpty(t, entry.CorrelationID)

	require.NoError(t, audit.Log(ctx, &domain.StatusChange{
		AdminID:   1,
		Entity:    "booking",
		EntityID:  42,
		OldStatus: "confirmed",
		NewStatus: "completed",
	}))

	// Entries for another entity stay out of the trail.
	require.NoError(t, audit.Log(ctx, &domain.StatusChange{
		AdminID:   1,
		Entity:    "payment",
		EntityID:  42,
		OldStatus: "captured",
		NewStatus: "refunded",
	}))

	trail, err := audit.GetByEntity(ctx, "booking", 42)
	assert.NoError(t, err)
	assert.Len(t, trail, 2)
	for _, e := range trail {
		assert.Equal(t, "booking", e.Entity)
		assert.Equal(t, int64(42), e.EntityID)
	}
}
