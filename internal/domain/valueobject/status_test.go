package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/complaints-dashboard/internal/pkg/apperror"
)

func TestParseComplaintStatus(t *testing.T) {
	tests := []struct {
		in   string
		want ComplaintStatus
	}{
		{"Assessed", ComplaintStatusAssessed},
		{"pending", ComplaintStatusAssessed},
		{"Pending", ComplaintStatusAssessed},
		{"in progress", ComplaintStatusInProgress},
		{"In  Progress", ComplaintStatusInProgress},
		{"in_progress", ComplaintStatusInProgress},
		{"RESOLVED", ComplaintStatusResolved},
	}

	for _, tt := range tests {
		got, err := ParseComplaintStatus(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseComplaintStatus_Invalid(t *testing.T) {
	_, err := ParseComplaintStatus("Closed")

	assert.True(t, apperror.IsValidation(err))
}

func TestComplaintStatus_AnyValidTransitionAllowed(t *testing.T) {
	for _, from := range ComplaintStatuses() {
		for _, to := range ComplaintStatuses() {
			assert.True(t, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
	assert.False(t, ComplaintStatusResolved.CanTransitionTo("Archived"))
}

func TestNormalizeComplaintStatus_KeepsUnknown(t *testing.T) {
	assert.Equal(t, ComplaintStatusAssessed, NormalizeComplaintStatus(""))
	assert.Equal(t, ComplaintStatus("Archived"), NormalizeComplaintStatus("Archived"))
}

func TestUserStatus_Opposite(t *testing.T) {
	assert.Equal(t, UserStatusBlocked, UserStatusActive.Opposite())
	assert.Equal(t, UserStatusActive, UserStatusBlocked.Opposite())

	s, err := NewUserStatus("blocked")
	require.NoError(t, err)
	assert.Equal(t, UserStatusBlocked, s)

	_, err = NewUserStatus("Deleted")
	assert.True(t, apperror.IsValidation(err))
}

func TestNewPriority_DefaultsToMedium(t *testing.T) {
	p, err := NewPriority("")
	require.NoError(t, err)
	assert.Equal(t, PriorityMedium, p)

	p, err = NewPriority("high")
	require.NoError(t, err)
	assert.Equal(t, PriorityHigh, p)

	_, err = NewPriority("urgent")
	assert.Error(t, err)
}

func TestImageRefs_ScanBothShapes(t *testing.T) {
	var single ImageRefs
	require.NoError(t, single.Scan("https://cdn/a.jpg"))
	assert.Equal(t, ImageRefs{"https://cdn/a.jpg"}, single)

	var list ImageRefs
	require.NoError(t, list.Scan([]byte(`["https://cdn/a.jpg", "", "https://cdn/b.jpg"]`)))
	assert.Equal(t, ImageRefs{"https://cdn/a.jpg", "https://cdn/b.jpg"}, list)

	var empty ImageRefs
	require.NoError(t, empty.Scan(nil))
	assert.Empty(t, empty)

	assert.Error(t, empty.Scan(42))
}

func TestImageRefs_Value(t *testing.T) {
	v, err := ImageRefs{}.Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = ImageRefs{"a.jpg"}.Value()
	require.NoError(t, err)
	assert.Equal(t, "a.jpg", v)

	v, err = ImageRefs{"a.jpg", "b.jpg"}.Value()
	require.NoError(t, err)
	assert.JSONEq(t, `["a.jpg","b.jpg"]`, v.(string))
}

func TestImageRefs_UnmarshalJSON(t *testing.T) {
	var payload struct {
		Single ImageRefs `json:"single"`
		List   ImageRefs `json:"list"`
		Null   ImageRefs `json:"null"`
	}

	err := json.Unmarshal([]byte(`{"single":"a.jpg","list":["b.jpg","c.jpg"],"null":null}`), &payload)
	require.NoError(t, err)

	assert.Equal(t, ImageRefs{"a.jpg"}, payload.Single)
	assert.Equal(t, ImageRefs{"b.jpg", "c.jpg"}, payload.List)
	assert.Nil(t, payload.Null)
	assert.Equal(t, "a.jpg", payload.Single.First())
}
