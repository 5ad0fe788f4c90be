package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/complaints-dashboard/internal/domain/entity"
	"github.com/ignatzorin/complaints-dashboard/internal/domain/valueobject"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager("access", "refresh", time.Minute, time.Hour)
	profile := &entity.Profile{ID: uuid.New(), Role: valueobject.RoleAdmin}
	sessionID := uuid.New()

	pair, refreshExp, err := m.GeneratePair(profile, sessionID)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), refreshExp, 5*time.Second)

	claims, err := m.ParseAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, profile.ID, claims.ProfileID)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, sessionID, claims.SessionID)

	refresh, err := m.ParseRefresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, sessionID.String(), refresh.ID)

	_, err = m.ParseAccess(pair.RefreshToken)
	assert.Error(t, err, "refresh токен подписан другим секретом")
}

func TestTokenManager_RejectsExpiredAndForeign(t *testing.T) {
	m := NewTokenManager("access", "refresh", -time.Minute, time.Hour)
	pair, _, err := m.GeneratePair(&entity.Profile{ID: uuid.New()}, uuid.New())
	require.NoError(t, err)

	_, err = m.ParseAccess(pair.AccessToken)
	assert.Error(t, err)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": uuid.NewString()})
	raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = m.ParseAccess(raw)
	assert.Error(t, err)
}
