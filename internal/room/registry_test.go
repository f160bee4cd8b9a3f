package room_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pairroomgo/internal/room"
)

func TestRegistryCreateAndGet(t *testing.T) {
	reg := room.NewRegistry()

	r, err := reg.Create("4821")
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, "4821", r.Code)

	got, ok := reg.Get("4821")
	require.True(t, ok)
	assert.Same(t, r, got)

	_, ok = reg.Get("0000")
	assert.False(t, ok)

	assert.Equal(t, 1, reg.Len())
}

func TestRegistryDuplicateCode(t *testing.T) {
	reg := room.NewRegistry()

	_, err := reg.Create("4821")
	require.NoError(t, err)

	_, err = reg.Create("4821")
	assert.ErrorIs(t, err, room.ErrDuplicateCode)
}

func TestRegistryDeleteIsIdempotent(t *testing.T) {
	reg := room.NewRegistry()

	_, err := reg.Create("4821")
	require.NoError(t, err)

	reg.Delete("4821")
	_, ok := reg.Get("4821")
	assert.False(t, ok)

	// duplicate teardown attempts must be harmless
	reg.Delete("4821")
	reg.Delete("never-existed")
	assert.Equal(t, 0, reg.Len())
}

func TestRegistryCodeReusableAfterDelete(t *testing.T) {
	reg := room.NewRegistry()

	_, err := reg.Create("4821")
	require.NoError(t, err)
	reg.Delete("4821")

	_, err = reg.Create("4821")
	assert.NoError(t, err)
}
