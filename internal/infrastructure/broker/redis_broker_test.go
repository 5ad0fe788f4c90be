package broker

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/complaints-dashboard/internal/ws"
)

func TestDecode_RoundTripsEnvelope(t *testing.T) {
	target := uuid.New()
	env, err := ws.NewEnvelope(target, "session.revoked", map[string]string{"session_id": "s1"})
	require.NoError(t, err)

	raw, err := json.Marshal(env)
	require.NoError(t, err)

	got, err := Decode(string(raw))
	require.NoError(t, err)
	assert.Equal(t, target, got.ProfileID)
	assert.JSONEq(t, `{"type":"session.revoked","data":{"session_id":"s1"}}`, string(got.Frame))
}

func TestDecode_RejectsGarbage(t *testing.T) {
	_, err := Decode("not json")
	assert.Error(t, err)

	_, err = Decode(`{"profile_id":"00000000-0000-0000-0000-000000000000"}`)
	assert.Error(t, err)
}

func TestConnect_BadURL(t *testing.T) {
	_, err := Connect(t.Context(), "://nope")
	assert.Error(t, err)
}

func TestNewRedisBroker_DefaultChannel(t *testing.T) {
	b := NewRedisBroker(nil, "", nil)
	assert.Equal(t, DefaultChannel, b.channel)
}
