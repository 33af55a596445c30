package attachments

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDataURI(t *testing.T) {
	payload := []byte("comprobante-falso")
	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(payload)

	data, mimeType, err := DecodeDataURI(uri)
	require.NoError(t, err)
	assert.Equal(t, payload, data)
	assert.Equal(t, "image/png", mimeType)
}

func TestDecodeDataURIRejectsMalformed(t *testing.T) {
	cases := []struct {
		name string
		uri  string
	}{
		{"no scheme", "image/png;base64,AAAA"},
		{"no comma", "data:image/png;base64"},
		{"not base64 encoded", "data:image/png,AAAA"},
		{"bad payload", "data:image/png;base64,???"},
		{"empty mime", "data:;base64,AAAA"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := DecodeDataURI(tc.uri)
			assert.ErrorIs(t, err, ErrInvalidDataURI)
		})
	}
}

func TestExtensionFor(t *testing.T) {
	assert.Equal(t, ".jpg", extensionFor("image/jpeg"))
	assert.Equal(t, ".pdf", extensionFor("application/pdf"))
	assert.Equal(t, ".bin", extensionFor("application/octet-stream"))
}
