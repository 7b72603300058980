package messages_test

import (
	"testing"

	"helpdispatch/internal/adapters/out/messages"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_NewJobAlert(t *testing.T) {
	catalog, err := messages.NewCatalog("en")
	require.NoError(t, err)

	t.Run("should render distance", func(t *testing.T) {
		title, body, err := catalog.NewJobAlert("Plumbing", "Asha", 450, 3.26)

		require.NoError(t, err)
		assert.Equal(t, "New Plumbing Job!", title)
		assert.Equal(t, "Asha needs help! ₹450 • 3.3km away", body)
	})

	t.Run("should say near you without distance", func(t *testing.T) {
		_, body, err := catalog.NewJobAlert("Plumbing", "Asha", 99.5, 0)

		require.NoError(t, err)
		assert.Equal(t, "Asha needs help! ₹99.5 • Near you", body)
	})
}

func TestCatalog_RequestBroadcasted(t *testing.T) {
	catalog, err := messages.NewCatalog("en")
	require.NoError(t, err)

	title, body, err := catalog.RequestBroadcasted("Plumbing", 3)

	require.NoError(t, err)
	assert.Equal(t, "Request Broadcasted Successfully!", title)
	assert.Contains(t, body, "Your Plumbing request has been sent to 3 qualified helpers.")
}

func TestCatalog_OtherLanguage(t *testing.T) {
	catalog, err := messages.NewCatalog("hi")
	require.NoError(t, err)

	title, _, err := catalog.NewJobAlert("Plumbing", "Asha", 450, 1)

	require.NoError(t, err)
	assert.Contains(t, title, "Plumbing")
	assert.NotEqual(t, "New Plumbing Job!", title)
}

func TestCatalog_UnknownLanguageFallsBackToEnglish(t *testing.T) {
	catalog, err := messages.NewCatalog("xx")
	require.NoError(t, err)

	title, _, err := catalog.NewJobAlert("Painting", "Ravi", 100, 1)

	require.NoError(t, err)
	assert.Equal(t, "New Painting Job!", title)
}
