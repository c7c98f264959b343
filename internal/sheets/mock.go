package sheets

import (
	"context"
	"sync"
)

// MockService is an in-memory Service for tests.
type MockService struct {
	TitlesErr   error
	ValuesErr   error
	Data        map[string][][]any
	Titles      []string
	ValuesCalls []string
	TitlesCalls int
	mu          sync.Mutex
}

// NewMockService creates a mock holding one tab per entry of data.
func NewMockService(data map[string][][]any) *MockService {
	titles := make([]string, 0, len(data))
	for name := range data {
		titles = append(titles, name)
	}
	return &MockService{
		Data:   data,
		Titles: titles,
	}
}

// SheetTitles implements Service.
func (m *MockService) SheetTitles(_ context.Context, _ string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.TitlesCalls++
	if m.TitlesErr != nil {
		return nil, m.TitlesErr
	}
	return append([]string{}, m.Titles...), nil
}

// Values implements Service. readRange is the quoted sheet name.
func (m *MockService) Values(_ context.Context, _ string, readRange string) ([][]any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ValuesCalls = append(m.ValuesCalls, readRange)
	if m.ValuesErr != nil {
		return nil, m.ValuesErr
	}
	for name, values := range m.Data {
		if sheetRange(name) == readRange {
			return values, nil
		}
	}
	return nil, nil
}

// Factory returns a ServiceFactory that always hands out m.
func (m *MockService) Factory() ServiceFactory {
	return func(context.Context, []byte) (Service, error) {
		return m, nil
	}
}
