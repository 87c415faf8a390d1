package perspective_test

import (
	"encoding/json"
	"testing"

	"github.com/NeuralTrust/perspective/pkg/infra/perspective"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttributeType_TokenBijection(t *testing.T) {
	seen := make(map[string]perspective.AttributeType)

	for _, attr := range perspective.AllAttributeTypes() {
		token := attr.String()
		require.NotEmpty(t, token, "attribute %d has no wire token", int(attr))
		require.NotContains(t, seen, token, "token %s is used twice", token)
		seen[token] = attr

		parsed, err := perspective.ParseAttributeType(token)
		require.NoError(t, err)
		assert.Equal(t, attr, parsed)

		text, err := attr.MarshalText()
		require.NoError(t, err)
		var back perspective.AttributeType
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, attr, back)
	}

	assert.Len(t, seen, 16)
}

func TestAttributeType_KnownTokens(t *testing.T) {
	tests := map[perspective.AttributeType]string{
		perspective.Toxicity:          "TOXICITY",
		perspective.SevereToxicity:    "SEVERE_TOXICITY",
		perspective.Spam:              "SPAM",
		perspective.Incoherent:        "INCOHERENT",
		perspective.Obscene:           "OBSCENE",
		perspective.Inflammatory:      "INFLAMMATORY",
		perspective.AttackOnAuthor:    "ATTACK_ON_AUTHOR",
		perspective.AttackOnCommenter: "ATTACK_ON_COMMENTER",
		perspective.LikelyToReject:    "LIKELY_TO_REJECT",
		perspective.Unsubstantial:     "UNSUBSTANTIAL",
	}

	for attr, token := range tests {
		assert.Equal(t, token, attr.String())
	}
}

func TestParseAttributeType_Unknown(t *testing.T) {
	tests := []string{"", "toxicity", "NOT_AN_ATTRIBUTE", " TOXICITY"}

	for _, token := range tests {
		t.Run(token, func(t *testing.T) {
			_, err := perspective.ParseAttributeType(token)
			assert.Error(t, err)
		})
	}
}

func TestAttributeType_Invalid(t *testing.T) {
	invalid := perspective.AttributeType(99)

	assert.False(t, invalid.Valid())
	assert.Equal(t, "AttributeType(99)", invalid.String())
	_, err := invalid.MarshalText()
	assert.Error(t, err)
}

func TestAttributeType_AsJSONMapKey(t *testing.T) {
	in := map[perspective.AttributeType]int{perspective.Toxicity: 1, perspective.Spam: 2}

	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"TOXICITY":1,"SPAM":2}`, string(data))

	var out map[perspective.AttributeType]int
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestNumberKind(t *testing.T) {
	kind, err := perspective.ParseNumberKind("PROBABILITY")
	require.NoError(t, err)
	assert.Equal(t, perspective.Probability, kind)
	assert.Equal(t, "PROBABILITY", kind.String())

	_, err = perspective.ParseNumberKind("STD_DEV_SCORE")
	assert.Error(t, err)
}
