package sparse

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"go-vcfc/internal/files"
	"go-vcfc/internal/vcfc"
)

// ErrNoRecord is returned when a queried slot is vacant or a chain walk runs
// off either end of the skip chain.
var ErrNoRecord = errors.New("no record at the requested slot")

// Record is one occupied slot of a sparse file: its address, its skip-chain
// distances, and the decompressed text line stored there.
type Record struct {
	Slot       int64
	DistToPrev uint64
	DistToNext uint64
	Line       string
}

// Reader gives random access into a sparse file. Lookups by (reference,
// position) are a single placement computation plus reads at that one slot; the skip chain
// links occupied slots for ordered walks in either direction.
type Reader struct {
	cfg    *Config
	fh     *os.File
	schema *vcfc.CompressionSchema
	cache  *vcfc.RunCache

	HeaderLines []string
	data_start  int64
	first_skip  uint64
}

// OpenReader opens a sparse file and parses its metadata/header prefix and
// first-skip field.
func OpenReader(path string, cfg *Config) (*Reader, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("encountered the following error while opening the sparse file: %w", err)
	}

	meta_header_lines, schema, err := files.ReadMetadataHeaders(bufio.NewReader(fh))
	if err != nil {
		fh.Close()
		return nil, err
	}

	var prefix_length int64
	for _, line := range meta_header_lines {
		prefix_length += int64(len(line))
	}

	var first_skip_bytes [8]byte
	if _, err := fh.ReadAt(first_skip_bytes[:], prefix_length); err != nil {
		fh.Close()
		return nil, &vcfc.ValidationError{Message: "sparse file ended before the first skip field"}
	}

	return &Reader{
		cfg:         cfg,
		fh:          fh,
		schema:      schema,
		cache:       vcfc.NewRunCache(),
		HeaderLines: meta_header_lines,
		data_start:  prefix_length + 8,
		first_skip:  binary.LittleEndian.Uint64(first_skip_bytes[:]),
	}, nil
}

func (r *Reader) Close() error {
	return r.fh.Close()
}

// SampleCount reports the sample count derived from the file's header line.
func (r *Reader) SampleCount() int {
	return r.schema.SampleCount
}

// Query locates the record for a (reference, position) pair. The slot address
// is computed directly from the placement function, so the lookup cost does
// not depend on how many records the file holds. ErrNoRecord is returned for
// a vacant slot.
func (r *Reader) Query(reference_name string, pos int64) (*Record, error) {
	variant_offset, err := r.cfg.ComputeSparseOffset(reference_name, pos)
	if err != nil {
		return nil, err
	}
	return r.RecordAt(variant_offset + r.data_start)
}

// First returns the record the first-skip field points at, or ErrNoRecord
// for a file with no records.
func (r *Reader) First() (*Record, error) {
	return r.RecordAt(r.data_start + int64(r.first_skip))
}

// Next follows the forward skip chain. ErrNoRecord marks the end of the
// chain, where distance_to_next is zero.
func (r *Reader) Next(rec *Record) (*Record, error) {
	if rec.DistToNext == 0 {
		return nil, ErrNoRecord
	}
	return r.RecordAt(rec.Slot + int64(rec.DistToNext))
}

// Prev follows the backward skip chain. The first record's distance_to_prev
// points at the start of the data region, which ends the walk.
func (r *Reader) Prev(rec *Record) (*Record, error) {
	prev_slot := rec.Slot - int64(rec.DistToPrev)
	if prev_slot <= r.data_start {
		return nil, ErrNoRecord
	}
	return r.RecordAt(prev_slot)
}

// Walk visits every record in slot order by following the skip chain from
// the first record. The walk stops early if fn returns an error.
func (r *Reader) Walk(fn func(*Record) error) error {
	rec, err := r.First()
	for err == nil {
		if fn_err := fn(rec); fn_err != nil {
			return fn_err
		}
		rec, err = r.Next(rec)
	}
	if errors.Is(err, ErrNoRecord) {
		return nil
	}
	return err
}

// RecordAt reads and decodes the record at an absolute slot address. A slot
// holding only file hole zeros, or past the end of the file, is vacant.
func (r *Reader) RecordAt(slot int64) (*Record, error) {
	var front [SkipFieldsSize + 2*vcfc.LineLengthHeaderSize]byte
	if _, err := r.fh.ReadAt(front[:], slot); err != nil {
		if err == io.EOF {
			return nil, ErrNoRecord
		}
		return nil, err
	}

	header_bytes := front[SkipFieldsSize:]
	line_length, err := vcfc.DecodeLengthHeader(header_bytes[:vcfc.LineLengthHeaderSize])
	if err != nil {
		// a hole reads back as zeros, which can never carry extension count 3
		if is_all_zero(header_bytes[:vcfc.LineLengthHeaderSize]) {
			return nil, ErrNoRecord
		}
		return nil, err
	}

	compressed := make([]byte, vcfc.LineLengthHeaderSize+int(line_length))
	if _, err := r.fh.ReadAt(compressed, slot+SkipFieldsSize); err != nil {
		return nil, &vcfc.ValidationError{Message: "sparse file ended inside a record"}
	}

	var linebuf bytes.Buffer
	record_reader := bufio.NewReader(bytes.NewReader(compressed))
	if _, err := vcfc.DecompressDataLine(record_reader, r.schema, r.cache, &linebuf); err != nil {
		return nil, err
	}

	return &Record{
		Slot:       slot,
		DistToPrev: binary.LittleEndian.Uint64(front[0:8]),
		DistToNext: binary.LittleEndian.Uint64(front[8:16]),
		Line:       linebuf.String(),
	}, nil
}

func is_all_zero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}
