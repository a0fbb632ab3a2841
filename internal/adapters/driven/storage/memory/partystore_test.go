package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mapleline/policyscan/internal/core/domain"
)

func TestPartyStore_Seeded(t *testing.T) {
	store := NewSeededPartyStore()

	parties, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, parties, 2)

	// Ordered by name.
	assert.Equal(t, "Conservative Party of Canada", parties[0].Name)
	assert.Equal(t, "Liberal Party of Canada", parties[1].Name)
}

func TestPartyStore_GetByName(t *testing.T) {
	store := NewSeededPartyStore()

	party, err := store.GetByName(context.Background(), "Liberal Party of Canada")
	require.NoError(t, err)
	assert.Equal(t, "LPC", party.Abbreviation)

	_, err = store.GetByName(context.Background(), "Green Party")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPartyStore_GetByAbbreviation(t *testing.T) {
	store := NewSeededPartyStore()

	party, err := store.GetByAbbreviation(context.Background(), "cpc")
	require.NoError(t, err)
	assert.Equal(t, "Conservative Party of Canada", party.Name)
}

func TestPartyStore_GetByID(t *testing.T) {
	store := NewPartyStore()
	id := store.Add(domain.Party{Name: "Liberal Party of Canada", Abbreviation: "LPC"})

	party, err := store.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Liberal Party of Canada", party.Name)

	_, err = store.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
