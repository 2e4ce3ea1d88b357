package session

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"empresas_admin/internal/shared/submission"
)

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func TestNewSubmissionRedis_Defaults(t *testing.T) {
	t.Parallel()

	rdb, _ := redismock.NewClientMock()
	r := NewSubmissionRedis(rdb, "", 0)
	assert.Equal(t, "envio", r.prefix)
	assert.Equal(t, 30*time.Minute, r.ttl)
}

func TestSubmissionRedis_Acquire(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		setnx  bool
		err    error
		wantOK bool
	}{
		{"success: first acquire", true, nil, true},
		{"duplicate: key exists", false, nil, false},
		{"failure: redis error", false, errors.New("redis down"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rdb, mock := redismock.NewClientMock()
			r := NewSubmissionRedis(rdb, "envio", time.Minute)

			value := mustJSON(t, record{State: submission.StateSubmitting})
			exp := mock.ExpectSetNX("envio:tok", value, time.Minute)
			if tt.err != nil {
				exp.SetErr(tt.err)
			} else {
				exp.SetVal(tt.setnx)
			}

			ok, err := r.Acquire(context.Background(), "tok")
			if tt.err != nil {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantOK, ok)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSubmissionRedis_FinishAndLookup(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	r := NewSubmissionRedis(rdb, "envio", time.Minute)
	ctx := context.Background()

	out := submission.Outcome{Form: "altaempresa", Success: true, Message: "Empresa creada"}
	stored := mustJSON(t, record{State: submission.StateDone, Outcome: &out})

	mock.ExpectSet("envio:tok", stored, time.Minute).SetVal("OK")
	mock.ExpectGet("envio:tok").SetVal(string(stored))

	require.NoError(t, r.Finish(ctx, "tok", out))
	state, got, err := r.Lookup(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, submission.StateDone, state)
	require.NotNil(t, got)
	assert.Equal(t, out, *got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmissionRedis_Lookup(t *testing.T) {
	t.Parallel()

	t.Run("missing key is idle", func(t *testing.T) {
		t.Parallel()

		rdb, mock := redismock.NewClientMock()
		mock.ExpectGet("envio:tok").RedisNil()

		state, out, err := NewSubmissionRedis(rdb, "envio", time.Minute).Lookup(context.Background(), "tok")
		require.NoError(t, err)
		assert.Equal(t, submission.StateIdle, state)
		assert.Nil(t, out)
	})

	t.Run("in flight", func(t *testing.T) {
		t.Parallel()

		rdb, mock := redismock.NewClientMock()
		mock.ExpectGet("envio:tok").SetVal(string(mustJSON(t, record{State: submission.StateSubmitting})))

		state, out, err := NewSubmissionRedis(rdb, "envio", time.Minute).Lookup(context.Background(), "tok")
		require.NoError(t, err)
		assert.Equal(t, submission.StateSubmitting, state)
		assert.Nil(t, out)
	})

	t.Run("corrupted value", func(t *testing.T) {
		t.Parallel()

		rdb, mock := redismock.NewClientMock()
		mock.ExpectGet("envio:tok").SetVal("not json")

		_, _, err := NewSubmissionRedis(rdb, "envio", time.Minute).Lookup(context.Background(), "tok")
		assert.Error(t, err)
	})
}

func TestSubmissionRedis_Release(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	mock.ExpectDel("envio:tok").SetVal(1)

	require.NoError(t, NewSubmissionRedis(rdb, "envio", time.Minute).Release(context.Background(), "tok"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmissionRedis_WithGuard(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	store := NewSubmissionRedis(rdb, "envio", time.Minute)
	g := submission.NewGuard(store, nil)

	out := submission.Outcome{Form: "altaempresa", Success: true, Message: "creada"}
	mock.ExpectSetNX("envio:tok", mustJSON(t, record{State: submission.StateSubmitting}), time.Minute).SetVal(true)
	mock.ExpectSet("envio:tok", mustJSON(t, record{State: submission.StateDone, Outcome: &out}), time.Minute).SetVal("OK")

	res, err := g.Submit(context.Background(), "altaempresa", "tok", func(context.Context) (string, error) {
		return "creada", nil
	}, "fallback")
	require.NoError(t, err)
	assert.True(t, res.Outcome.Success)
	assert.NoError(t, mock.ExpectationsWereMet())
}
