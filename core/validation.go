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

import "fmt"

// ValidateTableRecord validates a TableRecord according to domain rules.
//
// Validation rules:
//   - SourceFile must not be empty (it is the correlation identifier)
//   - SourceType must be one of the closed enumeration values
//
// NOT validated (the loader tolerates sparse source files):
//   - Title, Description, Location, Keywords, Columns (may all be empty)
//   - SealID (0 is valid; many source files carry none)
func ValidateTableRecord(record *TableRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidTableRecord)
	}
	if record.SourceFile == "" {
		return fmt.Errorf("%w: %w", ErrInvalidTableRecord, ErrEmptySourceFile)
	}
	if !record.SourceType.Valid() {
		return fmt.Errorf("%w: %w: %q", ErrInvalidTableRecord, ErrInvalidSourceType, record.SourceType)
	}
	return nil
}

// ValidateDescriptionRecord validates a DescriptionRecord according to domain rules.
//
// Validation rules:
//   - SourceFile must not be empty
//   - SourceType must be one of the closed enumeration values
func ValidateDescriptionRecord(record *DescriptionRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidDescriptionRecord)
	}
	if record.SourceFile == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDescriptionRecord, ErrEmptySourceFile)
	}
	if !record.SourceType.Valid() {
		return fmt.Errorf("%w: %w: %q", ErrInvalidDescriptionRecord, ErrInvalidSourceType, record.SourceType)
	}
	return nil
}
