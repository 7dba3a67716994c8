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


package loader

import "errors"

var (
	// ErrDataDirRequired is returned when a data directory is not provided.
	ErrDataDirRequired = errors.New("data directory required")

	// ErrReloadCallbackRequired is returned when a watcher is created without a callback.
	ErrReloadCallbackRequired = errors.New("reload callback required")
)
