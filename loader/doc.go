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


// Package loader reads catalog records from a metadata directory tree.
//
// The tree holds one subtree per source (avs, dlvs), each carrying YAML
// table metadata files and structured TXT description files. Files parse
// concurrently on a worker pool; a malformed file is logged and skipped so
// one bad export never poisons the catalog. A Watcher can monitor the tree
// and signal when a fresh snapshot should be loaded.
package loader
