// Package photo converts image files to and from the data-URL strings stored
// on items.
package photo

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
)

var (
	ErrNotImage   = errors.New("not an image")
	ErrNotDataURL = errors.New("not a base64 data URL")
)

// EncodeFile reads an image file and returns it as data:<mime>;base64,<payload>.
func EncodeFile(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read photo: %w", err)
	}
	return Encode(b)
}

// Encode sniffs the content type of b and returns its data URL.
func Encode(b []byte) (string, error) {
	mime := http.DetectContentType(b)
	if !strings.HasPrefix(mime, "image/") {
		return "", fmt.Errorf("%w: detected %s", ErrNotImage, mime)
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(b), nil
}

// Decode splits a data URL into its mime type and raw bytes.
func Decode(dataURL string) (mime string, data []byte, err error) {
	rest, ok := strings.CutPrefix(dataURL, "data:")
	if !ok {
		return "", nil, ErrNotDataURL
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, ErrNotDataURL
	}
	mime, ok = strings.CutSuffix(meta, ";base64")
	if !ok {
		return "", nil, ErrNotDataURL
	}
	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrNotDataURL, err)
	}
	return mime, data, nil
}

// Extension picks a file suffix for an image mime type.
func Extension(mime string) string {
	switch mime {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	case "image/bmp":
		return ".bmp"
	case "image/x-icon":
		return ".ico"
	}
	return ".img"
}

// Size is the decoded byte size of a data URL, or 0 when it does not parse.
func Size(dataURL string) int {
	_, payload, ok := strings.Cut(dataURL, ",")
	if !ok {
		return 0
	}
	return base64.StdEncoding.DecodedLen(len(payload)) - strings.Count(payload[max(0, len(payload)-2):], "=")
}
