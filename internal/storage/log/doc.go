// Package log implements the append-only record log that backs the kvdb
// storage engine.
//
// The log is a single regular file holding a flat concatenation of
// self-delimited records. There is no header, footer, or magic; an empty
// file is a fresh store. All integers are big-endian.
//
// Record wire format:
//
//	set:    [0x00][key:8 int64][length:8 int64][value:length]
//	remove: [0x01][key:8 int64]
//
// A set record consumes 17+len(value) bytes, a remove record 9 bytes.
//
// A partial trailing record (torn write from a death mid-append) is
// tolerated: replay stops at the first undecodable position and the owner
// truncates the file there.
package log
