package core

import (
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for the catalog record types. They follow the layout musgen
// emits so the wire format stays compatible if generation is reintroduced.

// IDMUS is the MUS serializer for ID.
var IDMUS = idMUS{}

type idMUS struct{}

func (s idMUS) Marshal(v ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (s idMUS) Unmarshal(bs []byte) (v ID, n int, err error) {
	num, n, err := varint.Uint64.Unmarshal(bs)
	return ID(num), n, err
}

func (s idMUS) Size(v ID) (size int) {
	return varint.Uint64.Size(uint64(v))
}

func (s idMUS) Skip(bs []byte) (n int, err error) {
	return varint.Uint64.Skip(bs)
}

// SourceTypeMUS is the MUS serializer for SourceType.
var SourceTypeMUS = sourceTypeMUS{}

type sourceTypeMUS struct{}

func (s sourceTypeMUS) Marshal(v SourceType, bs []byte) (n int) {
	return varint.Int.Marshal(int(v), bs)
}

func (s sourceTypeMUS) Unmarshal(bs []byte) (v SourceType, n int, err error) {
	num, n, err := varint.Int.Unmarshal(bs)
	return SourceType(num), n, err
}

func (s sourceTypeMUS) Size(v SourceType) (size int) {
	return varint.Int.Size(int(v))
}

func (s sourceTypeMUS) Skip(bs []byte) (n int, err error) {
	return varint.Int.Skip(bs)
}

var stringSliceMUS = ord.NewSliceSer[string](ord.String)

// ColumnMUS is the MUS serializer for Column.
var ColumnMUS = columnMUS{}

type columnMUS struct{}

func (s columnMUS) Marshal(v Column, bs []byte) (n int) {
	n = ord.String.Marshal(v.Name, bs)
	n += ord.String.Marshal(v.Title, bs[n:])
	n += ord.String.Marshal(v.Description, bs[n:])
	n += ord.String.Marshal(v.Datatype, bs[n:])
	n += ord.Bool.Marshal(v.Required, bs[n:])
	return n
}

func (s columnMUS) Unmarshal(bs []byte) (v Column, n int, err error) {
	var n1 int
	if v.Name, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	if v.Title, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Description, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Datatype, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Required, n1, err = ord.Bool.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	return v, n, nil
}

func (s columnMUS) Size(v Column) (size int) {
	size = ord.String.Size(v.Name)
	size += ord.String.Size(v.Title)
	size += ord.String.Size(v.Description)
	size += ord.String.Size(v.Datatype)
	size += ord.Bool.Size(v.Required)
	return size
}

func (s columnMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	for i := 0; i < 4; i++ {
		if n1, err = ord.String.Skip(bs[n:]); err != nil {
			return n + n1, err
		}
		n += n1
	}
	if n1, err = ord.Bool.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	return n + n1, nil
}

var columnSliceMUS = ord.NewSliceSer[Column](ColumnMUS)

// TableRecordMUS is the MUS serializer for TableRecord.
var TableRecordMUS = tableRecordMUS{}

type tableRecordMUS struct{}

func (s tableRecordMUS) Marshal(v TableRecord, bs []byte) (n int) {
	n = varint.Int64.Marshal(v.SealID, bs)
	n += ord.String.Marshal(v.DatasetID, bs[n:])
	n += ord.String.Marshal(v.Location, bs[n:])
	n += ord.String.Marshal(v.Title, bs[n:])
	n += ord.String.Marshal(v.Description, bs[n:])
	n += stringSliceMUS.Marshal(v.Keywords, bs[n:])
	n += columnSliceMUS.Marshal(v.Columns, bs[n:])
	n += ord.String.Marshal(v.SourceFile, bs[n:])
	n += SourceTypeMUS.Marshal(v.SourceType, bs[n:])
	return n
}

func (s tableRecordMUS) Unmarshal(bs []byte) (v TableRecord, n int, err error) {
	var n1 int
	if v.SealID, n, err = varint.Int64.Unmarshal(bs); err != nil {
		return
	}
	if v.DatasetID, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Location, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Title, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Description, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Keywords, n1, err = stringSliceMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Columns, n1, err = columnSliceMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.SourceFile, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.SourceType, n1, err = SourceTypeMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	return v, n, nil
}

func (s tableRecordMUS) Size(v TableRecord) (size int) {
	size = varint.Int64.Size(v.SealID)
	size += ord.String.Size(v.DatasetID)
	size += ord.String.Size(v.Location)
	size += ord.String.Size(v.Title)
	size += ord.String.Size(v.Description)
	size += stringSliceMUS.Size(v.Keywords)
	size += columnSliceMUS.Size(v.Columns)
	size += ord.String.Size(v.SourceFile)
	size += SourceTypeMUS.Size(v.SourceType)
	return size
}

func (s tableRecordMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	if n, err = varint.Int64.Skip(bs); err != nil {
		return
	}
	for i := 0; i < 4; i++ {
		if n1, err = ord.String.Skip(bs[n:]); err != nil {
			return n + n1, err
		}
		n += n1
	}
	if n1, err = stringSliceMUS.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	n += n1
	if n1, err = columnSliceMUS.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	n += n1
	if n1, err = ord.String.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	n += n1
	if n1, err = SourceTypeMUS.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	return n + n1, nil
}

// DescriptionRecordMUS is the MUS serializer for DescriptionRecord.
var DescriptionRecordMUS = descriptionRecordMUS{}

type descriptionRecordMUS struct{}

func (s descriptionRecordMUS) Marshal(v DescriptionRecord, bs []byte) (n int) {
	n = ord.String.Marshal(v.TableName, bs)
	n += ord.String.Marshal(v.Purpose, bs[n:])
	n += stringSliceMUS.Marshal(v.KeyFeatures, bs[n:])
	n += stringSliceMUS.Marshal(v.JoinableFeatures, bs[n:])
	n += ord.String.Marshal(v.SourceFile, bs[n:])
	n += SourceTypeMUS.Marshal(v.SourceType, bs[n:])
	return n
}

func (s descriptionRecordMUS) Unmarshal(bs []byte) (v DescriptionRecord, n int, err error) {
	var n1 int
	if v.TableName, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	if v.Purpose, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.KeyFeatures, n1, err = stringSliceMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.JoinableFeatures, n1, err = stringSliceMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.SourceFile, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.SourceType, n1, err = SourceTypeMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	return v, n, nil
}

func (s descriptionRecordMUS) Size(v DescriptionRecord) (size int) {
	size = ord.String.Size(v.TableName)
	size += ord.String.Size(v.Purpose)
	size += stringSliceMUS.Size(v.KeyFeatures)
	size += stringSliceMUS.Size(v.JoinableFeatures)
	size += ord.String.Size(v.SourceFile)
	size += SourceTypeMUS.Size(v.SourceType)
	return size
}

func (s descriptionRecordMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	if n, err = ord.String.Skip(bs); err != nil {
		return
	}
	if n1, err = ord.String.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	n += n1
	if n1, err = stringSliceMUS.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	n += n1
	if n1, err = stringSliceMUS.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	n += n1
	if n1, err = ord.String.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	n += n1
	if n1, err = SourceTypeMUS.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	return n + n1, nil
}
