package imagecodec

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/vbonduro/imagestore/internal/domain"
)

// DataURIPrefix is the marker every accepted payload must contain.
const DataURIPrefix = "data:image/"

// Validate gates payloads accepted for creation. It only checks that the
// payload is present and looks like an image data-URI; the Base64 tail is not
// inspected.
func Validate(payload string) error {
	if len(payload) == 0 {
		return domain.NewValidationError("image", "image is required")
	}
	if !strings.Contains(payload, DataURIPrefix) {
		return domain.NewValidationError("image", "invalid image")
	}
	return nil
}

// Decode returns the binary content following the first comma of payload.
// The MIME prefix is not checked against the decoded bytes.
func Decode(payload string) ([]byte, error) {
	idx := strings.IndexByte(payload, ',')
	if idx < 0 {
		return nil, fmt.Errorf("%w: missing data separator", domain.ErrFormat)
	}

	data, err := base64.StdEncoding.DecodeString(payload[idx+1:])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFormat, err)
	}
	return data, nil
}

// Subtype extracts "<subtype>" from "data:image/<subtype>;...", or "" if the
// payload has no recognizable prefix.
func Subtype(payload string) string {
	idx := strings.Index(payload, DataURIPrefix)
	if idx < 0 {
		return ""
	}
	rest := payload[idx+len(DataURIPrefix):]
	if end := strings.IndexAny(rest, ";,"); end >= 0 {
		return rest[:end]
	}
	return ""
}
