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


// Package ai defines the AI service abstractions for datascout.
//
// Two services sit behind interfaces here: a QueryRefiner that turns a vague
// search into a sharper one, and a SQLGenerator that writes SQL against the
// tables a search surfaced. The openai subpackage implements both against any
// OpenAI-compatible chat API; the mock subpackage provides test doubles.
//
// The package also hosts the model-free helpers: ExtractIntent reads
// structured intent out of a query with plain string heuristics, and
// SuggestNextSteps picks follow-up guidance from the result count. Both work
// without any AI backend configured.
//
// # Usage
//
//	cfg := ai.NewConfig(ai.WithChatHost("http://localhost:11434"))
//	provider, err := openai.NewProvider(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	refinement, err := provider.QueryRefiner().AnalyzeQuery(ctx, query, results, history)
package ai
