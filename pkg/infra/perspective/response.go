package perspective

import (
	"github.com/valyala/fastjson"
)

// parseAnalyzeResponse maps
//
//	{"attributeScores":{"<TOKEN>":{"summaryScore":{"value":0.87,"type":"PROBABILITY"}}}}
//
// into an AnalysisResult. Extra fields (spanScores, languages, ...) are ignored.
func parseAnalyzeResponse(body []byte) (AnalysisResult, error) {
	var p fastjson.Parser
	root, err := p.ParseBytes(body)
	if err != nil {
		return nil, newParseError("malformed json: %v", err)
	}
	if root.Type() != fastjson.TypeObject {
		return nil, newParseError("expected a json object, got %s", root.Type())
	}

	scores := root.Get("attributeScores")
	if scores == nil {
		return nil, newParseError("missing field attributeScores")
	}
	obj, err := scores.Object()
	if err != nil {
		return nil, newParseError("attributeScores: %v", err)
	}

	result := make(AnalysisResult, obj.Len())
	var parseErr *ParseError
	obj.Visit(func(key []byte, v *fastjson.Value) {
		if parseErr != nil {
			return
		}
		attr, err := ParseAttributeType(string(key))
		if err != nil {
			parseErr = newParseError("attributeScores: %v", err)
			return
		}
		score, perr := parseAttributeScore(string(key), v)
		if perr != nil {
			parseErr = perr
			return
		}
		result[attr] = score
	})
	if parseErr != nil {
		return nil, parseErr
	}

	return result, nil
}

func parseAttributeScore(token string, v *fastjson.Value) (AttributeScore, *ParseError) {
	summary := v.Get("summaryScore")
	if summary == nil {
		return AttributeScore{}, newParseError("attributeScores.%s: missing field summaryScore", token)
	}
	if summary.Type() != fastjson.TypeObject {
		return AttributeScore{}, newParseError("attributeScores.%s.summaryScore: expected object, got %s", token, summary.Type())
	}

	rawValue := summary.Get("value")
	if rawValue == nil {
		return AttributeScore{}, newParseError("attributeScores.%s.summaryScore: missing field value", token)
	}
	value, err := rawValue.Float64()
	if err != nil {
		return AttributeScore{}, newParseError("attributeScores.%s.summaryScore.value: %v", token, err)
	}
	if value < 0 || value > 1 {
		return AttributeScore{}, newParseError("attributeScores.%s.summaryScore.value: %v is outside [0, 1]", token, value)
	}

	rawType := summary.Get("type")
	if rawType == nil {
		return AttributeScore{}, newParseError("attributeScores.%s.summaryScore: missing field type", token)
	}
	typeToken, err := rawType.StringBytes()
	if err != nil {
		return AttributeScore{}, newParseError("attributeScores.%s.summaryScore.type: %v", token, err)
	}
	kind, err := ParseNumberKind(string(typeToken))
	if err != nil {
		return AttributeScore{}, newParseError("attributeScores.%s.summaryScore.type: %v", token, err)
	}

	return AttributeScore{Summary: ScoreValue{Value: value, Type: kind}}, nil
}
