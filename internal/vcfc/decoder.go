package vcfc

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
)

// DecompressDataLine reads one compressed record from r and appends the
// reconstructed text line, including the terminating newline, to linebuf.
// It returns the number of compressed bytes consumed.
//
// io.EOF is returned unwrapped when the source is already drained at the
// record boundary; EOF anywhere inside a record is a validation error.
func DecompressDataLine(r *bufio.Reader, schema *CompressionSchema, cache *RunCache, linebuf *bytes.Buffer) (int, error) {
	var header [2 * LineLengthHeaderSize]byte

	// a clean EOF before the first header byte means the stream is done
	first, err := r.ReadByte()
	if err != nil {
		if err == io.EOF {
			return 0, io.EOF
		}
		return 0, err
	}
	header[0] = first
	if _, err := io.ReadFull(r, header[1:]); err != nil {
		return 1, validationErrorf("record length headers truncated")
	}
	line_byte_count := len(header)

	// the line length is not needed for flow control, the record is
	// self-delimiting, but the extension count must still validate
	if _, err := DecodeLengthHeader(header[:LineLengthHeaderSize]); err != nil {
		return line_byte_count, err
	}
	required_length, err := DecodeLengthHeader(header[LineLengthHeaderSize:])
	if err != nil {
		return line_byte_count, err
	}

	// copy the raw required-columns section through, counting tabs as we go
	raw_start := linebuf.Len()
	if _, err := io.CopyN(linebuf, r, int64(required_length)); err != nil {
		return line_byte_count, validationErrorf("unexpected end of record inside required columns section")
	}
	line_byte_count += int(required_length)

	line_tab_count := 0
	for _, b := range linebuf.Bytes()[raw_start:] {
		if b == '\t' {
			line_tab_count++
		}
	}

	// with samples present the raw section holds the 8 required columns, the
	// format column, and a trailing separator: 9 tabs. With no samples the
	// trailing separator is absent (8 tabs), and the format column itself may
	// be too (7 tabs).
	if line_tab_count != VcfRequiredColCount+1 {
		if schema.SampleCount != 0 ||
			(line_tab_count != VcfRequiredColCount && line_tab_count != VcfRequiredColCount-1) {
			return line_byte_count, validationErrorf("did not read all uncompressed columns")
		}
	}

	line_sample_count := 0
	for line_sample_count < schema.SampleCount {
		b, err := r.ReadByte()
		if err != nil {
			return line_byte_count, validationErrorf("missing samples, expected %d, received %d",
				schema.SampleCount, line_sample_count)
		}
		line_byte_count++

		switch {
		case b&SampleMask00 == SampleMasked00:
			// a 0|0 run; the cache hands back the whole tab-joined run
			count := int(b &^ SampleMask00)
			linebuf.WriteString(cache.GetOrSet(GT00, uint8(count)))
			line_sample_count += count
			// remove the run's trailing tab if at end of line
			if line_sample_count >= schema.SampleCount && count > 0 {
				linebuf.Truncate(linebuf.Len() - 1)
			}
		case b&SampleMaskUncompressed == SampleMaskedUncompressed:
			// uncompressed columns follow as literal bytes
			uncompressed_count := int(b &^ SampleMaskUncompressed)
			ucounter := 0
			for ucounter < uncompressed_count {
				cb, err := r.ReadByte()
				if err != nil {
					return line_byte_count, validationErrorf("unexpected end of record inside uncompressed column")
				}
				line_byte_count++
				switch cb {
				case '\n':
					// the newline terminates the final literal but belongs to
					// the record framing, so push it back
					ucounter++
					line_sample_count++
					if ucounter != uncompressed_count {
						return line_byte_count, validationErrorf("reached end of line before reading all uncompressed columns")
					}
					if err := r.UnreadByte(); err != nil {
						return line_byte_count, fmt.Errorf("failed to push back line terminator: %w", err)
					}
					line_byte_count--
				case '\t':
					ucounter++
					line_sample_count++
					if line_sample_count < schema.SampleCount {
						// if not the last term, include the tab
						linebuf.WriteByte(cb)
					}
				default:
					linebuf.WriteByte(cb)
				}
			}
		default:
			// either 0|1, 1|0, or 1|1. The 1|1 flag shares its bit pattern
			// with the uncompressed marker under shorter masks, so this full
			// 3-bit comparison must come after the uncompressed case.
			var sample_str string
			switch b & SampleMask011011 {
			case SampleMasked01:
				sample_str = GT01
			case SampleMasked10:
				sample_str = GT10
			case SampleMasked11:
				sample_str = GT11
			default:
				return line_byte_count, validationErrorf("unrecognized sample bitmask during decompression")
			}
			count := int(b &^ SampleMask011011)
			for ; count > 0; count-- {
				linebuf.WriteString(sample_str)
				line_sample_count++
				if line_sample_count < schema.SampleCount {
					linebuf.WriteByte('\t')
				}
			}
		}
	}

	// make sure the next byte is the line terminator
	nb, err := r.ReadByte()
	if err != nil || nb != '\n' {
		return line_byte_count, validationErrorf("sample line did not end in a newline")
	}
	line_byte_count++
	linebuf.WriteByte('\n')

	return line_byte_count, nil
}
