package llm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahayak-ai/sahayak/internal/domain"
)

func TestStripFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare json", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"plain fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "  {\"a\":1}\n", `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripFences(tt.in))
		})
	}
}

func TestParseResponse_ValidJSON(t *testing.T) {
	var facts domain.ProfileFacts
	err := parseResponse("```json\n{\"age\": 35, \"categories\": [\"SC\"]}\n```", &facts)
	require.NoError(t, err)
	require.NotNil(t, facts.Age)
	assert.Equal(t, 35, *facts.Age)
	assert.Equal(t, []string{"SC"}, facts.Categories)
}

func TestParseResponse_ProseIsUnparseable(t *testing.T) {
	// Prose wrapping valid JSON must not be scavenged for the JSON.
	var facts domain.ProfileFacts
	err := parseResponse(`Sure! Here is the data: {"age": 35}`, &facts)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnparseable))
}

func TestParseResponse_EmptyIsUnparseable(t *testing.T) {
	var eval domain.TurnEvaluation
	err := parseResponse("", &eval)
	assert.True(t, errors.Is(err, domain.ErrUnparseable))
}
