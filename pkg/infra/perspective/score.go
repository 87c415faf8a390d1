package perspective

import (
	"fmt"
	"sort"

	"github.com/samber/lo"
)

// NumberKind tags how a score value is to be read. The service only emits
// probabilities today.
type NumberKind int

const (
	Probability NumberKind = iota
)

const probabilityToken = "PROBABILITY"

func ParseNumberKind(token string) (NumberKind, error) {
	if token == probabilityToken {
		return Probability, nil
	}
	return 0, fmt.Errorf("unknown score type %q", token)
}

func (k NumberKind) String() string {
	if k == Probability {
		return probabilityToken
	}
	return fmt.Sprintf("NumberKind(%d)", int(k))
}

func (k NumberKind) MarshalText() ([]byte, error) {
	if k != Probability {
		return nil, fmt.Errorf("invalid number kind %d", int(k))
	}
	return []byte(probabilityToken), nil
}

func (k *NumberKind) UnmarshalText(text []byte) error {
	parsed, err := ParseNumberKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

type ScoreValue struct {
	Value float64    `json:"value"`
	Type  NumberKind `json:"type"`
}

type AttributeScore struct {
	Summary ScoreValue `json:"summaryScore"`
}

// AnalysisResult holds one score per attribute the service answered for.
type AnalysisResult map[AttributeType]AttributeScore

// Score returns the summary value for t.
func (r AnalysisResult) Score(t AttributeType) (float64, bool) {
	s, ok := r[t]
	if !ok {
		return 0, false
	}
	return s.Summary.Value, true
}

// Types returns the scored attributes ordered by wire token.
func (r AnalysisResult) Types() []AttributeType {
	types := lo.Keys(map[AttributeType]AttributeScore(r))
	sort.Slice(types, func(i, j int) bool {
		return types[i].String() < types[j].String()
	})
	return types
}

// Max returns the highest scoring attribute. Ties go to the lower wire token.
func (r AnalysisResult) Max() (AttributeType, float64, bool) {
	if len(r) == 0 {
		return 0, 0, false
	}
	types := r.Types()
	best := lo.MaxBy(types, func(a, b AttributeType) bool {
		return r[a].Summary.Value > r[b].Summary.Value
	})
	return best, r[best].Summary.Value, true
}
