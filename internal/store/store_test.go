package store

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// flexibleSQLMatcher creates a regex that is insensitive to whitespace for more robust SQL mock testing.
func flexibleSQLMatcher(sql string) string {
	trimmed := strings.TrimSpace(sql)
	return regexp.MustCompile(`\s+`).ReplaceAllString(regexp.QuoteMeta(trimmed), `\s+`)
}

func TestEnsureSchema(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	mockPool.ExpectExec(flexibleSQLMatcher(sqlCreateAnswers)).
		WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))

	require.NoError(t, New(mockPool, zap.NewNop()).EnsureSchema(context.Background()))
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestRecordAnswer(t *testing.T) {
	ctx := context.Background()

	t.Run("should fill in id and timestamp", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()

		mockPool.ExpectExec(flexibleSQLMatcher(sqlInsertAnswer)).
			WithArgs(pgxmock.AnyArg(), "What is the angle?", "30 degrees", "vector_angle", pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		got, err := New(mockPool, nil).RecordAnswer(ctx, Record{
			Question: "What is the angle?",
			Answer:   "30 degrees",
			Model:    "vector_angle",
		})
		require.NoError(t, err)
		_, parseErr := uuid.Parse(got.ID)
		assert.NoError(t, parseErr, "generated id should be a uuid")
		assert.Equal(t, time.UTC, got.AnsweredAt.Location())
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("should keep a caller supplied id in UTC", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()

		id := uuid.NewString()
		at := time.Date(2026, 10, 18, 12, 0, 0, 0, time.FixedZone("CEST", 2*3600))
		mockPool.ExpectExec(flexibleSQLMatcher(sqlInsertAnswer)).
			WithArgs(id, "q", "5 units", "m", at.UTC()).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		got, err := New(mockPool, nil).RecordAnswer(ctx, Record{ID: id, Question: "q", Answer: "5 units", Model: "m", AnsweredAt: at})
		require.NoError(t, err)
		assert.Equal(t, id, got.ID)
		assert.True(t, at.Equal(got.AnsweredAt))
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("should propagate insert failures", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()

		dbErr := errors.New("connection reset")
		mockPool.ExpectExec(flexibleSQLMatcher(sqlInsertAnswer)).
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnError(dbErr)

		_, err = New(mockPool, nil).RecordAnswer(ctx, Record{Question: "q", Answer: "a", Model: "m"})
		assert.ErrorIs(t, err, dbErr)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("should reject a mismatched row count", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()

		mockPool.ExpectExec(flexibleSQLMatcher(sqlInsertAnswer)).
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("INSERT", 0))

		_, err = New(mockPool, nil).RecordAnswer(ctx, Record{Question: "q", Answer: "a", Model: "m"})
		assert.ErrorContains(t, err, "expected 1, got 0")
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})
}

func TestRecentAnswers(t *testing.T) {
	ctx := context.Background()

	t.Run("should scan rows newest first", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()

		now := time.Now().UTC()
		rows := pgxmock.NewRows([]string{"id", "question", "answer", "model", "answered_at"}).
			AddRow("id-2", "q2", "5 units", "m", now).
			AddRow("id-1", "q1", "30 degrees", "m", now.Add(-time.Minute))
		mockPool.ExpectQuery(flexibleSQLMatcher(sqlRecentAnswers)).WithArgs(10).WillReturnRows(rows)

		got, err := New(mockPool, nil).RecentAnswers(ctx, 10)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "id-2", got[0].ID)
		assert.Equal(t, "30 degrees", got[1].Answer)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("should reject a non-positive limit", func(t *testing.T) {
		_, err := New(nil, nil).RecentAnswers(ctx, 0)
		assert.Error(t, err)
	})

	t.Run("should propagate query failures", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()

		dbErr := errors.New("relation does not exist")
		mockPool.ExpectQuery(flexibleSQLMatcher(sqlRecentAnswers)).WithArgs(5).WillReturnError(dbErr)

		_, err = New(mockPool, nil).RecentAnswers(ctx, 5)
		assert.ErrorIs(t, err, dbErr)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})
}
