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


package storage

import (
	"github.com/poiesic/datascout/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := core.IDMUS.Unmarshal(data)
	return id, err
}

// MarshalTableRecord serializes a TableRecord to bytes.
func MarshalTableRecord(record *core.TableRecord) []byte {
	buf := make([]byte, core.TableRecordMUS.Size(*record))
	core.TableRecordMUS.Marshal(*record, buf)
	return buf
}

// UnmarshalTableRecord deserializes a TableRecord from bytes.
func UnmarshalTableRecord(data []byte) (*core.TableRecord, error) {
	record, _, err := core.TableRecordMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// MarshalDescriptionRecord serializes a DescriptionRecord to bytes.
func MarshalDescriptionRecord(record *core.DescriptionRecord) []byte {
	buf := make([]byte, core.DescriptionRecordMUS.Size(*record))
	core.DescriptionRecordMUS.Marshal(*record, buf)
	return buf
}

// UnmarshalDescriptionRecord deserializes a DescriptionRecord from bytes.
func UnmarshalDescriptionRecord(data []byte) (*core.DescriptionRecord, error) {
	record, _, err := core.DescriptionRecordMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &record, nil
}
