// Package log implements the append-only record log that backs the kvdb
// storage engine.
//
// A log is a flat sequence of self-delimited records, each either a set
// record carrying a key and value or a remove record carrying only a key.
// All integers are big-endian.
package log

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Record tags.
const (
	TagSet    byte = 0x00
	TagRemove byte = 0x01
)

// Frame layout constants.
const (
	// setHeaderSize is tag (1) + key (8) + value length (8).
	setHeaderSize = 17

	// RemoveRecordSize is the full size of a remove record: tag (1) + key (8).
	RemoveRecordSize = 9
)

// ErrMalformed reports log content that could not be decoded: an unknown
// tag, a negative value length, or a stream that ends mid-record.
var ErrMalformed = errors.New("log: malformed record")

// Record is one decoded log entry. Tombstone records carry no value.
type Record struct {
	Key       int64
	Value     []byte
	Tombstone bool
}

// Size returns the encoded size of the record in bytes.
func (r *Record) Size() int64 {
	if r.Tombstone {
		return RemoveRecordSize
	}
	return SetRecordSize(len(r.Value))
}

// SetRecordSize returns the encoded size of a set record for a value of
// valueLen bytes.
func SetRecordSize(valueLen int) int64 {
	return setHeaderSize + int64(valueLen)
}

// EncodeSet encodes a set record for key and value.
func EncodeSet(key int64, value []byte) []byte {
	buf := make([]byte, setHeaderSize+len(value))
	buf[0] = TagSet
	binary.BigEndian.PutUint64(buf[1:9], uint64(key))
	binary.BigEndian.PutUint64(buf[9:17], uint64(int64(len(value))))
	copy(buf[setHeaderSize:], value)
	return buf
}

// EncodeRemove encodes a remove record for key.
func EncodeRemove(key int64) []byte {
	buf := make([]byte, RemoveRecordSize)
	buf[0] = TagRemove
	binary.BigEndian.PutUint64(buf[1:9], uint64(key))
	return buf
}

// Decode reads the next record from r and returns it together with the
// number of bytes consumed.
//
// A clean end of stream before the tag byte returns io.EOF. A stream that
// ends inside a record, an unknown tag, or a negative value length returns
// ErrMalformed.
func Decode(r io.Reader) (*Record, int64, error) {
	var tag [1]byte
	if _, err := io.ReadFull(r, tag[:]); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, 0, io.EOF
		}
		return nil, 0, fmt.Errorf("log: read tag: %w", err)
	}

	var key int64
	if err := readInt64(r, &key); err != nil {
		return nil, 0, ErrMalformed
	}

	switch tag[0] {
	case TagRemove:
		return &Record{Key: key, Tombstone: true}, RemoveRecordSize, nil

	case TagSet:
		var length int64
		if err := readInt64(r, &length); err != nil {
			return nil, 0, ErrMalformed
		}
		if length < 0 {
			return nil, 0, ErrMalformed
		}
		// Copy incrementally: a corrupt length field must not turn into a
		// giant upfront allocation.
		var buf bytes.Buffer
		if _, err := io.CopyN(&buf, r, length); err != nil {
			return nil, 0, ErrMalformed
		}
		return &Record{Key: key, Value: buf.Bytes()}, SetRecordSize(int(length)), nil

	default:
		return nil, 0, ErrMalformed
	}
}

// ReadValueAt reads the value of the set record starting at off. It returns
// ErrMalformed if the bytes at off are not a set record.
func ReadValueAt(r io.ReaderAt, off int64) ([]byte, error) {
	var header [setHeaderSize]byte
	if _, err := r.ReadAt(header[:], off); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, ErrMalformed
		}
		return nil, fmt.Errorf("log: read header at %d: %w", off, err)
	}
	if header[0] != TagSet {
		return nil, ErrMalformed
	}

	length := int64(binary.BigEndian.Uint64(header[9:17]))
	if length < 0 {
		return nil, ErrMalformed
	}

	value := make([]byte, length)
	if _, err := r.ReadAt(value, off+setHeaderSize); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, ErrMalformed
		}
		return nil, fmt.Errorf("log: read value at %d: %w", off, err)
	}
	return value, nil
}

func readInt64(r io.Reader, out *int64) error {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return err
	}
	*out = int64(binary.BigEndian.Uint64(buf[:]))
	return nil
}
