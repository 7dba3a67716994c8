// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package mock

import "github.com/poiesic/datascout/ai"

// MockProvider is a test double for ai.Provider.
// It aggregates mock refiner and generator instances.
type MockProvider struct {
	refiner   *MockQueryRefiner
	generator *MockSQLGenerator
}

// NewMockProvider creates a new mock provider with default mock services.
//
// Returns ai.Provider interface for consistency with production constructors.
// Use GetMockRefiner()/GetMockGenerator() to access concrete types for test
// assertions.
func NewMockProvider() ai.Provider {
	return &MockProvider{
		refiner:   NewMockQueryRefiner(),
		generator: NewMockSQLGenerator(),
	}
}

// NewMockProviderWithServices creates a mock provider with custom mock services.
// This allows full control over the behavior of each service.
func NewMockProviderWithServices(refiner *MockQueryRefiner, generator *MockSQLGenerator) ai.Provider {
	return &MockProvider{
		refiner:   refiner,
		generator: generator,
	}
}

// QueryRefiner returns the mock query refiner.
func (p *MockProvider) QueryRefiner() ai.QueryRefiner {
	return p.refiner
}

// SQLGenerator returns the mock SQL generator.
func (p *MockProvider) SQLGenerator() ai.SQLGenerator {
	return p.generator
}

// Close is a no-op for mock provider.
func (p *MockProvider) Close() error {
	return nil
}

// GetMockRefiner returns the underlying mock refiner for test assertions.
// This allows tests to check call counts and inject custom behavior.
func (p *MockProvider) GetMockRefiner() *MockQueryRefiner {
	return p.refiner
}

// GetMockGenerator returns the underlying mock generator for test assertions.
// This allows tests to check call counts and inject custom behavior.
func (p *MockProvider) GetMockGenerator() *MockSQLGenerator {
	return p.generator
}
