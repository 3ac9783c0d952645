package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sahayak-ai/sahayak/internal/domain"
)

// stripFences removes a surrounding markdown code fence, which models add
// despite instructions not to.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// parseResponse validates a model response as JSON for the expected
// structure. It either succeeds or reports domain.ErrUnparseable; it
// never scavenges partial JSON out of surrounding prose.
func parseResponse(raw string, v any) error {
	cleaned := stripFences(raw)
	if err := json.Unmarshal([]byte(cleaned), v); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrUnparseable, err)
	}
	return nil
}
