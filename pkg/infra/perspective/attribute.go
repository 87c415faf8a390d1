package perspective

import (
	"fmt"
	"strconv"
)

// AttributeType is one analysis dimension of the comment analyzer.
type AttributeType int

const (
	Toxicity AttributeType = iota
	SevereToxicity
	IdentityAttack
	Insult
	Profanity
	Threat
	SexuallyExplicit
	Flirtation
	Spam
	Incoherent
	Obscene
	Inflammatory
	AttackOnAuthor
	AttackOnCommenter
	LikelyToReject
	Unsubstantial

	attributeTypeCount
)

var attributeTokens = [...]string{
	Toxicity:          "TOXICITY",
	SevereToxicity:    "SEVERE_TOXICITY",
	IdentityAttack:    "IDENTITY_ATTACK",
	Insult:            "INSULT",
	Profanity:         "PROFANITY",
	Threat:            "THREAT",
	SexuallyExplicit:  "SEXUALLY_EXPLICIT",
	Flirtation:        "FLIRTATION",
	Spam:              "SPAM",
	Incoherent:        "INCOHERENT",
	Obscene:           "OBSCENE",
	Inflammatory:      "INFLAMMATORY",
	AttackOnAuthor:    "ATTACK_ON_AUTHOR",
	AttackOnCommenter: "ATTACK_ON_COMMENTER",
	LikelyToReject:    "LIKELY_TO_REJECT",
	Unsubstantial:     "UNSUBSTANTIAL",
}

// Fails to compile when a variant is added without a token.
var _ [len(attributeTokens) - int(attributeTypeCount)]struct{}
var _ [int(attributeTypeCount) - len(attributeTokens)]struct{}

var attributesByToken = func() map[string]AttributeType {
	m := make(map[string]AttributeType, len(attributeTokens))
	for i, token := range attributeTokens {
		m[token] = AttributeType(i)
	}
	return m
}()

// AllAttributeTypes returns every supported attribute in declaration order.
func AllAttributeTypes() []AttributeType {
	all := make([]AttributeType, attributeTypeCount)
	for i := range all {
		all[i] = AttributeType(i)
	}
	return all
}

// ParseAttributeType maps a wire token such as "SEVERE_TOXICITY" back to its
// AttributeType. Matching is exact.
func ParseAttributeType(token string) (AttributeType, error) {
	t, ok := attributesByToken[token]
	if !ok {
		return 0, fmt.Errorf("unknown attribute type %q", token)
	}
	return t, nil
}

func (t AttributeType) Valid() bool {
	return t >= 0 && t < attributeTypeCount
}

// String returns the wire token.
func (t AttributeType) String() string {
	if !t.Valid() {
		return "AttributeType(" + strconv.Itoa(int(t)) + ")"
	}
	return attributeTokens[t]
}

func (t AttributeType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid attribute type %d", int(t))
	}
	return []byte(attributeTokens[t]), nil
}

func (t *AttributeType) UnmarshalText(text []byte) error {
	parsed, err := ParseAttributeType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
