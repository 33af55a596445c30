package attachments

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidDataURI = errors.New("invalid data URI")

var extensionsByMIME = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/webp":      ".webp",
	"application/pdf": ".pdf",
}

// DecodeDataURI parses a base64 data URI of the form
// data:<mime>;base64,<payload> and returns the raw bytes plus MIME type.
func DecodeDataURI(uri string) ([]byte, string, error) {
	rest, found := strings.CutPrefix(uri, "data:")
	if !found {
		return nil, "", ErrInvalidDataURI
	}
	meta, payload, found := strings.Cut(rest, ",")
	if !found {
		return nil, "", ErrInvalidDataURI
	}
	mimeType, found := strings.CutSuffix(meta, ";base64")
	if !found || mimeType == "" {
		return nil, "", ErrInvalidDataURI
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidDataURI, err)
	}
	return data, mimeType, nil
}

func extensionFor(mimeType string) string {
	if ext, ok := extensionsByMIME[mimeType]; ok {
		return ext
	}
	return ".bin"
}
