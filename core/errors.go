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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidTableRecord indicates a TableRecord failed validation.
	ErrInvalidTableRecord = errors.New("invalid table record")

	// ErrInvalidDescriptionRecord indicates a DescriptionRecord failed validation.
	ErrInvalidDescriptionRecord = errors.New("invalid description record")

	// ErrInvalidSourceType indicates a value outside the closed avs/dlvs enumeration.
	ErrInvalidSourceType = errors.New("invalid source type")

	// ErrEmptySourceFile indicates the SourceFile field is empty.
	ErrEmptySourceFile = errors.New("source file cannot be empty")
)
