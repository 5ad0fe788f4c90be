package persistence

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/complaints-dashboard/internal/pkg/apperror"
)

func TestTranslate(t *testing.T) {
	ctx := context.Background()

	assert.NoError(t, translate(ctx, nil, apperror.ErrComplaintNotFound, "x"))

	err := translate(ctx, sql.ErrNoRows, apperror.ErrComplaintNotFound, "x")
	assert.True(t, errors.Is(err, apperror.ErrComplaintNotFound))

	err = translate(ctx, errors.New("connection refused"), apperror.ErrComplaintNotFound, "не удалось")
	assert.Equal(t, apperror.ErrCodeDatabaseError, apperror.CodeOf(err))

	err = translate(ctx, apperror.ErrProfileNotFound, nil, "x")
	assert.True(t, apperror.IsNotFound(err))
}

func TestTranslate_DeadlineBecomesNetworkTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-ctx.Done()

	err := translate(ctx, errors.New("pq: canceling statement due to user request"), nil, "x")
	assert.Equal(t, apperror.ErrCodeNetworkTimeout, apperror.CodeOf(err))
	assert.True(t, apperror.IsTransient(err))

	err = translate(context.Background(), context.DeadlineExceeded, nil, "x")
	assert.Equal(t, apperror.ErrCodeNetworkTimeout, apperror.CodeOf(err))
}

func TestTranslate_ClientCancelIsNotStoreFailure(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := translate(ctx, errors.New("pq: canceling statement due to user request"), nil, "x")
	assert.True(t, apperror.IsCanceled(err))
	assert.False(t, apperror.IsTransient(err))

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperror.StatusClientClosedRequest, appErr.HTTPStatus)

	err = translate(context.Background(), context.Canceled, apperror.ErrComplaintNotFound, "x")
	assert.Equal(t, apperror.ErrCodeCanceled, apperror.CodeOf(err))
}

func TestNewStore_DefaultTimeout(t *testing.T) {
	s := newStore(nil, 0)
	assert.Equal(t, DefaultStoreTimeout, s.timeout)

	ctx, cancel := s.call(context.Background())
	defer cancel()
	deadline, ok := ctx.Deadline()
	assert.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(DefaultStoreTimeout), deadline, time.Second)
}

func TestNullString(t *testing.T) {
	assert.False(t, nullString("").Valid)
	assert.Equal(t, sql.NullString{String: "Road", Valid: true}, nullString("Road"))
}
