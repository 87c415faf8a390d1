package perspective

import (
	"encoding/json"
	"fmt"
)

const defaultLanguage = "en"

type comment struct {
	Text string `json:"text"`
}

// attributeOptions serializes as {} which asks the service for its defaults.
type attributeOptions struct{}

type analyzeRequest struct {
	Comment             comment                     `json:"comment"`
	Languages           []string                    `json:"languages"`
	RequestedAttributes map[string]attributeOptions `json:"requestedAttributes"`
	DoNotStore          bool                        `json:"doNotStore"`
}

func newAnalyzeRequest(text string, types []AttributeType, doNotStore bool) (analyzeRequest, error) {
	requested := make(map[string]attributeOptions, len(types))
	for _, t := range types {
		if !t.Valid() {
			return analyzeRequest{}, fmt.Errorf("invalid attribute type %d", int(t))
		}
		requested[t.String()] = attributeOptions{}
	}
	return analyzeRequest{
		Comment:             comment{Text: text},
		Languages:           []string{defaultLanguage},
		RequestedAttributes: requested,
		DoNotStore:          doNotStore,
	}, nil
}

func (r analyzeRequest) marshal() ([]byte, error) {
	body, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal analyze request: %w", err)
	}
	return body, nil
}
