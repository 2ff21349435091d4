package gateway

import (
	"encoding/json"
	"strings"

	"github.com/rotisserie/eris"

	domai "github.com/bryanwahyu/truthlens/internal/domain/ai"
)

// ExtractJSON decodes the substring from the first '{' to the last '}' of raw
// into v. Prose around the object is ignored; anything else is ErrUnparsable.
func ExtractJSON(raw string, v any) error {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return eris.Wrap(domai.ErrUnparsable, "no JSON object in model output")
	}
	if err := json.Unmarshal([]byte(raw[start:end+1]), v); err != nil {
		return eris.Wrapf(domai.ErrUnparsable, "decode model output: %v", err)
	}
	return nil
}
