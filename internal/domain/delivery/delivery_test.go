package delivery

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAssignment(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	a := NewAssignment("o1", " d1 ", now)
	require.NotNil(t, a.DriverID)
	assert.Equal(t, "d1", *a.DriverID)
	assert.Equal(t, AssignmentAssigned, a.Status)
	assert.Equal(t, now, a.AssignedAt)

	u := NewAssignment("o1", "", now)
	assert.Nil(t, u.DriverID)
	assert.Equal(t, AssignmentUnassigned, u.Status)
}
