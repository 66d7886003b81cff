package messaging

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAdminMessage(t *testing.T) {
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	m, err := NewAdminMessage("m1", "c1", "admin-1", "  Votre colis est en route  ", at)
	require.NoError(t, err)
	assert.Equal(t, "Votre colis est en route", m.Content)
	assert.Equal(t, SenderAdmin, m.SenderType)
	assert.Equal(t, MessageTypeText, m.MessageType)
	assert.False(t, m.IsRead)
	assert.Equal(t, at, m.CreatedAt)

	_, err = NewAdminMessage("m2", "c1", "admin-1", " \n ", at)
	assert.ErrorIs(t, err, ErrEmptyContent)

	_, err = NewAdminMessage("m3", "c1", "admin-1", strings.Repeat("é", MaxContentLength), at)
	assert.NoError(t, err, "length counts runes")

	_, err = NewAdminMessage("m4", "c1", "admin-1", strings.Repeat("a", MaxContentLength+1), at)
	assert.ErrorIs(t, err, ErrContentTooLong)
}

func TestParseConversationStatus(t *testing.T) {
	status, err := ParseConversationStatus(" Resolved")
	require.NoError(t, err)
	assert.Equal(t, ConversationResolved, status)

	_, err = ParseConversationStatus("closed")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
