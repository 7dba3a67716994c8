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


// Package search provides ranked, explainable keyword search over catalog
// table metadata.
//
// The Engine type builds an inverted index over a static snapshot of table
// and description records, then answers free-text queries by combining:
//   - Exact vocabulary matches on query tokens
//   - Partial matches by substring containment between query and indexed tokens
//   - Column-name lookups and unranked full-catalog listings that bypass the index
//
// Every result carries a relevance score and the human-readable reasons it
// matched. The engine is immutable after construction and safe for concurrent
// readers.
package search
