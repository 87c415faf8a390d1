package mocks

import (
	"fmt"
	"net/http"

	"github.com/stretchr/testify/mock"
)

// MockHTTPClient is a testify mock satisfying httpx.Client.
type MockHTTPClient struct {
	mock.Mock
}

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// NewMockHTTPClient registers AssertExpectations on test cleanup.
func NewMockHTTPClient(t testingT) *MockHTTPClient {
	m := &MockHTTPClient{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	args := m.Called(req)
	resp, ok := args.Get(0).(*http.Response)
	if !ok && args.Get(0) != nil {
		return nil, fmt.Errorf("expected *http.Response, got %T", args.Get(0))
	}
	return resp, args.Error(1)
}
