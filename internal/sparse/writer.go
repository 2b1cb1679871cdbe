package sparse

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"go-vcfc/internal/files"
	"go-vcfc/internal/vcfc"
)

// Each record in a sparse file is preceded by two little-endian uint64 skip
// fields: distance back to the previous record's slot and distance forward to
// the next one, both measured between slot start addresses.
const SkipFieldsSize = 16

// SparsifyFile reads the compressed file at input_path and rewrites each
// record into the sparse layout at output_path: the verbatim metadata/header
// prefix, an 8 byte first-skip field, then every record relocated to the slot
// the placement function assigns to its (reference, position).
//
// Input records must already be sorted by (reference id, position); slots
// must strictly increase, and a slot that does not is reported as a collision.
func SparsifyFile(input_path string, output_path string, cfg *Config, buffersize int, log *slog.Logger) error {
	reader, input_handle, err := files.MakeBinaryReader(input_path, buffersize)
	if err != nil {
		return err
	}
	defer input_handle.Close()

	meta_header_lines, _, err := files.ReadMetadataHeaders(reader)
	if err != nil {
		return err
	}

	output_fh, err := os.OpenFile(output_path, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0o600)
	if err != nil {
		return fmt.Errorf("there was an issue trying to create the sparse output file %s: %w", output_path, err)
	}
	defer output_fh.Close()

	var data_start_offset int64
	for _, line := range meta_header_lines {
		n, err := output_fh.WriteString(line)
		if err != nil {
			return err
		}
		data_start_offset += int64(n)
	}

	// placeholder for the first skip count from data_start_offset to the
	// first record, filled in when the first record's slot is known
	var first_skip_placeholder [8]byte
	if _, err := output_fh.Write(first_skip_placeholder[:]); err != nil {
		return err
	}
	data_start_offset += 8

	is_first_line := true
	previous_offset := data_start_offset
	record_count := 0

	header_bytes := make([]byte, 2*vcfc.LineLengthHeaderSize)
	var line_bytes []byte

	for {
		if _, err := io.ReadFull(reader, header_bytes[:1]); err != nil {
			if err == io.EOF {
				break
			}
			return err
		}
		if _, err := io.ReadFull(reader, header_bytes[1:]); err != nil {
			return &vcfc.ValidationError{Message: "record length headers truncated"}
		}

		line_length, err := vcfc.DecodeLengthHeader(header_bytes[:vcfc.LineLengthHeaderSize])
		if err != nil {
			return err
		}
		if _, err := vcfc.DecodeLengthHeader(header_bytes[vcfc.LineLengthHeaderSize:]); err != nil {
			return err
		}

		// everything after the first length header word; the required-columns
		// header word is already in hand, so line_length - 4 bytes remain
		body_length := int(line_length) - vcfc.LineLengthHeaderSize
		if body_length < 0 {
			return &vcfc.ValidationError{Message: "record line length shorter than its headers"}
		}
		if cap(line_bytes) < SkipFieldsSize+len(header_bytes)+body_length {
			line_bytes = make([]byte, SkipFieldsSize+len(header_bytes)+body_length)
		}
		line_bytes = line_bytes[:SkipFieldsSize+len(header_bytes)+body_length]
		clear(line_bytes[:SkipFieldsSize])
		copy(line_bytes[SkipFieldsSize:], header_bytes)

		body := line_bytes[SkipFieldsSize+len(header_bytes):]
		if n, err := io.ReadFull(reader, body); err != nil {
			return validationErrorMessagef(
				"unexpectedly reached end of compressed file, line header said %d, but only read %d bytes from line",
				line_length, n+vcfc.LineLengthHeaderSize)
		}

		reference_name, pos, err := parse_reference_and_position(body)
		if err != nil {
			return err
		}

		variant_offset, err := cfg.ComputeSparseOffset(reference_name, pos)
		if err != nil {
			return err
		}
		file_offset := variant_offset + data_start_offset
		log.Debug("placing record", "reference", reference_name, "pos", pos, "slot", file_offset)

		// slots must strictly increase across sorted input; a repeat or a
		// backwards step means two records map to the same slot region
		if file_offset <= previous_offset {
			return validationErrorMessagef(
				"sparse slot collision: record for %s:%d maps to slot %d at or before previous slot %d",
				reference_name, pos, file_offset, previous_offset)
		}

		count_to_prev := uint64(file_offset - previous_offset)
		binary.LittleEndian.PutUint64(line_bytes[0:8], count_to_prev)

		if is_first_line {
			// the first skip holds the distance from the start of the data
			// region to the first record
			var first_skip [8]byte
			binary.LittleEndian.PutUint64(first_skip[:], uint64(variant_offset))
			if _, err := output_fh.WriteAt(first_skip[:], data_start_offset-8); err != nil {
				return err
			}
			is_first_line = false
		} else {
			// back-patch the previous record's distance_to_next field
			var dist_to_next [8]byte
			binary.LittleEndian.PutUint64(dist_to_next[:], uint64(file_offset-previous_offset))
			if _, err := output_fh.WriteAt(dist_to_next[:], previous_offset+8); err != nil {
				return err
			}
		}

		if _, err := output_fh.WriteAt(line_bytes, file_offset); err != nil {
			return err
		}
		previous_offset = file_offset
		record_count++
	}

	log.Info("finished sparsifying", "record_count", record_count)
	return nil
}

// parse_reference_and_position pulls the first two tab-delimited terms out of
// a record body, which starts with the raw required-columns section.
func parse_reference_and_position(body []byte) (string, int64, error) {
	first_tab := bytes.IndexByte(body, '\t')
	if first_tab <= 0 {
		return "", 0, &vcfc.ValidationError{Message: "line did not contain a reference name"}
	}
	rest := body[first_tab+1:]
	second_tab := bytes.IndexByte(rest, '\t')
	if second_tab <= 0 {
		return "", 0, &vcfc.ValidationError{Message: "line did not contain a position value"}
	}
	pos_str := string(rest[:second_tab])
	pos, err := strconv.ParseInt(pos_str, 10, 64)
	if err != nil {
		return "", 0, validationErrorMessagef("failed to parse full position value to long: %s", pos_str)
	}
	return string(body[:first_tab]), pos, nil
}

func validationErrorMessagef(format string, args ...any) *vcfc.ValidationError {
	return &vcfc.ValidationError{Message: fmt.Sprintf(format, args...)}
}
