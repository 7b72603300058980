package request_test

import (
	"encoding/base64"
	"testing"
	"time"

	"helpdispatch/internal/core/domain/model/kernel"
	"helpdispatch/internal/core/domain/model/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsRemoteURL(t *testing.T) {
	assert.True(t, request.IsRemoteURL("https://cdn.example.com/a.jpg"))
	assert.True(t, request.IsRemoteURL("HTTP://cdn.example.com/a.jpg"))
	assert.False(t, request.IsRemoteURL("data:image/png;base64,AAAA"))
	assert.False(t, request.IsRemoteURL("/9j/4AAQSkZJRg=="))
}

func TestHasInlineMedia(t *testing.T) {
	assert.False(t, request.HasInlineMedia(nil))
	assert.False(t, request.HasInlineMedia([]string{"https://a", "http://b"}))
	assert.True(t, request.HasInlineMedia([]string{"https://a", "data:image/png;base64,AAAA"}))
}

func TestParseInlineMedia(t *testing.T) {
	payload := []byte("fake-png-bytes")
	encoded := base64.StdEncoding.EncodeToString(payload)

	t.Run("should parse data URI", func(t *testing.T) {
		m, err := request.ParseInlineMedia("data:image/png;base64," + encoded)

		require.NoError(t, err)
		assert.Equal(t, "image/png", m.ContentType)
		assert.Equal(t, payload, m.Data)
		assert.Equal(t, "png", m.Extension())
	})

	t.Run("should default raw base64 to jpeg", func(t *testing.T) {
		m, err := request.ParseInlineMedia(encoded)

		require.NoError(t, err)
		assert.Equal(t, request.DefaultMediaContentType, m.ContentType)
		assert.Equal(t, "jpg", m.Extension())
	})

	t.Run("should accept unpadded base64", func(t *testing.T) {
		m, err := request.ParseInlineMedia(base64.RawStdEncoding.EncodeToString([]byte("ab")))

		require.NoError(t, err)
		assert.Equal(t, []byte("ab"), m.Data)
	})

	t.Run("should reject garbage", func(t *testing.T) {
		_, err := request.ParseInlineMedia("not base64 at all!")
		require.Error(t, err)
	})

	t.Run("should reject empty payload", func(t *testing.T) {
		_, err := request.ParseInlineMedia("data:image/png;base64,")
		require.ErrorIs(t, err, request.ErrInlineMediaIsEmpty)
	})
}

func TestMediaPath(t *testing.T) {
	requester := kernel.NewUUID()
	req := kernel.NewUUID()
	at := time.UnixMilli(1700000000123)

	path := request.MediaPath(requester, req, at, 2, "png")

	assert.Equal(t, "service-requests/"+requester.String()+"/"+req.String()+"/1700000000123_2.png", path)
}
