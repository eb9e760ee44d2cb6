// Package snapshot persists the logical contents of a store, the
// (key, value) entries and the access counts. Index internals are never
// written, loading rebuilds the structures from scratch.
package snapshot

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"os"

	"github.com/pierrec/lz4/v4"

	"linkdex"
)

// File layout: [4-byte magic "LDX1"][uint16 version][uint32 crc32 of
// the uncompressed body][lz4-compressed body].
// Body: entry section then count section, both length-prefixed.
const (
	fileMagic      = "LDX1"
	fileHeaderSize = 10 // 4 (magic) + 2 (version) + 4 (crc)
	currentVersion = 1
)

// ErrBadMagic ...
var ErrBadMagic = errors.New("snapshot: bad magic")

// ErrChecksumMismatch ...
var ErrChecksumMismatch = errors.New("snapshot: checksum mismatch")

// Save writes entries and counts to path. The write goes through a
// temporary file and a rename, a crashed save never corrupts the
// previous snapshot.
func Save(path string, entries []linkdex.Entry, counts map[string]uint64) error {
	body := encodeBody(entries, counts)

	var header [fileHeaderSize]byte
	copy(header[:4], fileMagic)
	binary.LittleEndian.PutUint16(header[4:6], currentVersion)
	binary.LittleEndian.PutUint32(header[6:10], crc32.ChecksumIEEE(body))

	tmpPath := path + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return err
	}

	if _, err := f.Write(header[:]); err != nil {
		f.Close()
		return err
	}

	zw := lz4.NewWriter(f)
	if _, err := zw.Write(body); err != nil {
		f.Close()
		return err
	}
	if err := zw.Close(); err != nil {
		f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}

// Load reads a snapshot written by Save.
func Load(path string) ([]linkdex.Entry, map[string]uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	var header [fileHeaderSize]byte
	if _, err := io.ReadFull(f, header[:]); err != nil {
		return nil, nil, err
	}
	if string(header[:4]) != fileMagic {
		return nil, nil, ErrBadMagic
	}
	version := binary.LittleEndian.Uint16(header[4:6])
	if version != currentVersion {
		return nil, nil, fmt.Errorf("snapshot: unsupported version %d", version)
	}
	expectedCRC := binary.LittleEndian.Uint32(header[6:10])

	body, err := io.ReadAll(lz4.NewReader(f))
	if err != nil {
		return nil, nil, err
	}
	if crc32.ChecksumIEEE(body) != expectedCRC {
		return nil, nil, ErrChecksumMismatch
	}

	return decodeBody(body)
}

func encodeBody(entries []linkdex.Entry, counts map[string]uint64) []byte {
	var buf bytes.Buffer

	writeUint32(&buf, uint32(len(entries)))
	for _, e := range entries {
		writeString(&buf, e.Key)
		writeString(&buf, e.Value)
	}

	writeUint32(&buf, uint32(len(counts)))
	for key, count := range counts {
		writeString(&buf, key)

		var num [8]byte
		binary.LittleEndian.PutUint64(num[:], count)
		buf.Write(num[:])
	}

	return buf.Bytes()
}

func decodeBody(body []byte) ([]linkdex.Entry, map[string]uint64, error) {
	d := &decoder{data: body}

	numEntries := d.readUint32()
	entries := make([]linkdex.Entry, 0, numEntries)
	for i := uint32(0); i < numEntries && d.err == nil; i++ {
		key := d.readString()
		value := d.readString()
		entries = append(entries, linkdex.Entry{Key: key, Value: value})
	}

	numCounts := d.readUint32()
	counts := make(map[string]uint64, numCounts)
	for i := uint32(0); i < numCounts && d.err == nil; i++ {
		key := d.readString()
		counts[key] = d.readUint64()
	}

	if d.err != nil {
		return nil, nil, d.err
	}
	return entries, counts, nil
}

func writeUint32(buf *bytes.Buffer, v uint32) {
	var num [4]byte
	binary.LittleEndian.PutUint32(num[:], v)
	buf.Write(num[:])
}

func writeString(buf *bytes.Buffer, s string) {
	writeUint32(buf, uint32(len(s)))
	buf.WriteString(s)
}

type decoder struct {
	data []byte
	err  error
}

func (d *decoder) take(n int) []byte {
	if d.err != nil {
		return nil
	}
	if len(d.data) < n {
		d.err = errors.New("snapshot: truncated body")
		return nil
	}
	result := d.data[:n]
	d.data = d.data[n:]
	return result
}

func (d *decoder) readUint32() uint32 {
	b := d.take(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

func (d *decoder) readUint64() uint64 {
	b := d.take(8)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

func (d *decoder) readString() string {
	n := d.readUint32()
	return string(d.take(int(n)))
}
