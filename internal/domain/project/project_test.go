package project

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProjectHasSingleAdmin(t *testing.T) {
	p := New("Casa Belgrano", "refacción integral", "Av. Cabildo 1234", "A@x.com", "Ana")

	require.Len(t, p.Participants, 1)
	assert.Equal(t, RoleAdmin, p.Participants[0].Role)
	assert.Equal(t, "a@x.com", p.Participants[0].Email, "owner email is normalized")
	assert.Equal(t, []string{"a@x.com"}, []string(p.ParticipantsEmails))
	assert.Equal(t, StatusPlanning, p.Status)
	require.NoError(t, p.Validate())
}

func TestAddParticipant(t *testing.T) {
	t.Run("adds editor and syncs email list", func(t *testing.T) {
		p := New("Obra", "", "", "a@x.com", "Ana")

		err := p.AddParticipant("b@x.com", "Beto", RoleEditor)
		require.NoError(t, err)
		assert.Equal(t, RoleEditor, p.RoleFor("b@x.com"))
		assert.Equal(t, []string{"a@x.com", "b@x.com"}, []string(p.ParticipantsEmails))
	})

	t.Run("rejects duplicate email and leaves list unchanged", func(t *testing.T) {
		p := New("Obra", "", "", "a@x.com", "Ana")
		require.NoError(t, p.AddParticipant("b@x.com", "Beto", RoleViewer))

		err := p.AddParticipant("B@x.com", "Beto otra vez", RoleEditor)
		assert.ErrorIs(t, err, ErrParticipantExists)
		assert.Len(t, p.Participants, 2)
		assert.Equal(t, RoleViewer, p.RoleFor("b@x.com"))
	})

	t.Run("rejects granting admin on invite", func(t *testing.T) {
		p := New("Obra", "", "", "a@x.com", "Ana")

		err := p.AddParticipant("b@x.com", "Beto", RoleAdmin)
		assert.ErrorIs(t, err, ErrInvalidRole)
		assert.Len(t, p.Participants, 1)
	})
}

func TestRemoveParticipant(t *testing.T) {
	t.Run("rejects removing the sole admin", func(t *testing.T) {
		p := New("Obra", "", "", "a@x.com", "Ana")
		require.NoError(t, p.AddParticipant("b@x.com", "Beto", RoleEditor))

		err := p.RemoveParticipant("a@x.com")
		assert.ErrorIs(t, err, ErrLastAdmin)
		assert.Len(t, p.Participants, 2)
		assert.Equal(t, RoleAdmin, p.RoleFor("a@x.com"))
	})

	t.Run("allows removing an admin when another remains", func(t *testing.T) {
		p := New("Obra", "", "", "a@x.com", "Ana")
		require.NoError(t, p.AddParticipant("b@x.com", "Beto", RoleEditor))
		require.NoError(t, p.ChangeParticipantRole("b@x.com", RoleAdmin))

		require.NoError(t, p.RemoveParticipant("a@x.com"))
		assert.Equal(t, []string{"b@x.com"}, []string(p.ParticipantsEmails))
	})

	t.Run("removing non participant reports not found", func(t *testing.T) {
		p := New("Obra", "", "", "a@x.com", "Ana")
		assert.ErrorIs(t, p.RemoveParticipant("ghost@x.com"), ErrParticipantNotFound)
	})
}

func TestChangeParticipantRole(t *testing.T) {
	p := New("Obra", "", "", "a@x.com", "Ana")
	require.NoError(t, p.AddParticipant("b@x.com", "Beto", RoleViewer))

	require.NoError(t, p.ChangeParticipantRole("b@x.com", RoleEditor))
	assert.Equal(t, RoleEditor, p.RoleFor("b@x.com"))

	// demoting the only admin is rejected
	err := p.ChangeParticipantRole("a@x.com", RoleViewer)
	assert.ErrorIs(t, err, ErrLastAdmin)
	assert.Equal(t, RoleAdmin, p.RoleFor("a@x.com"))
}

func TestRoleForNonParticipant(t *testing.T) {
	p := New("Obra", "", "", "a@x.com", "Ana")
	assert.Equal(t, RoleNone, p.RoleFor("nobody@x.com"))
}

func TestStatusRoundTrip(t *testing.T) {
	for _, name := range []string{"planning", "in-progress", "completed", "on-hold"} {
		status, ok := StatusFromString(name)
		require.True(t, ok, name)
		assert.Equal(t, name, status.String())
	}

	_, ok := StatusFromString("archived")
	assert.False(t, ok)
}
