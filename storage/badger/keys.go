package badger

import (
	"encoding/binary"
	"fmt"

	"github.com/poiesic/datascout/core"
)

// Key prefixes for different data types
const (
	tableRecordPrefix = "tabrec"
	tableOrderPrefix  = "tabord"
	descRecordPrefix  = "desrec"
	descOrderPrefix   = "desord"
	catalogOrderSeq   = "catordseq"
)

// tableRecordID derives the stable storage ID for a table record. Identity
// is the (source type, source file) pair, so re-importing the same file
// overwrites the stored record instead of duplicating it.
func tableRecordID(record *core.TableRecord) core.ID {
	return core.IDFromContent("table:" + record.SourceType.String() + ":" + record.SourceFile)
}

// descRecordID derives the stable storage ID for a description record.
func descRecordID(record *core.DescriptionRecord) core.ID {
	return core.IDFromContent("desc:" + record.SourceType.String() + ":" + record.SourceFile)
}

// makeRecordKey generates a primary key for a record by ID.
func makeRecordKey(prefix string, id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", prefix, id))
}

// makeOrderKey generates a composite key for the import-order index.
// Format: prefix:seq
func makeOrderKey(prefix string, seq uint64) []byte {
	p := prefix + ":"
	buf := make([]byte, len(p)+8)
	offset := copy(buf, p)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], seq)
	return buf
}
