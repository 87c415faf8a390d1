package mocks

import (
	"context"
	"fmt"

	"github.com/NeuralTrust/perspective/pkg/infra/perspective"
	"github.com/stretchr/testify/mock"
)

// MockAnalyzer is a testify mock satisfying perspective.Analyzer.
type MockAnalyzer struct {
	mock.Mock
}

func (m *MockAnalyzer) Analyze(
	ctx context.Context,
	text string,
	types []perspective.AttributeType,
) (perspective.AnalysisResult, error) {
	args := m.Called(ctx, text, types)
	result, ok := args.Get(0).(perspective.AnalysisResult)
	if !ok && args.Get(0) != nil {
		return nil, fmt.Errorf("expected perspective.AnalysisResult, got %T", args.Get(0))
	}
	return result, args.Error(1)
}
