package files

import (
	"bufio"
	"io"
	"strings"

	"go-vcfc/internal/vcfc"
)

// ReadMetadataHeaders consumes the metadata (##) and header (#) prefix of a
// compressed file, leaving r positioned on the first byte of record data. It
// returns the raw prefix lines, newline included, and the schema derived from
// the header line.
//
// The prefix must contain at least one metadata line followed by exactly one
// header line; a metadata line after the header, a repeated header, or a file
// that ends before both were seen are all format violations.
func ReadMetadataHeaders(r *bufio.Reader) ([]string, *vcfc.CompressionSchema, error) {
	var state vcfc.LineStateMachine
	schema := &vcfc.CompressionSchema{}

	var lines []string
	got_meta, got_header := false, false

	for {
		c1, err := r.ReadByte()
		if err != nil {
			if err == io.EOF && (!got_meta || !got_header) {
				return nil, nil, &vcfc.ValidationError{Message: "file ended before a header or metadata line"}
			}
			if err == io.EOF {
				break
			}
			return nil, nil, err
		}

		if c1 != '#' {
			// data begins here
			if !got_meta || !got_header {
				return nil, nil, &vcfc.ValidationError{Message: "file was missing headers or metadata"}
			}
			if err := r.UnreadByte(); err != nil {
				return nil, nil, err
			}
			break
		}

		c2, err := r.ReadByte()
		if err != nil {
			return nil, nil, &vcfc.ValidationError{Message: "invalid format, empty header row"}
		}

		rest, err := r.ReadString('\n')
		if err != nil {
			return nil, nil, &vcfc.ValidationError{Message: "failed to read the rest of the metadata or header row"}
		}

		line := string(c1) + string(c2) + rest

		if c2 == '#' {
			if err := state.ToMeta(); err != nil {
				return nil, nil, err
			}
			got_meta = true
		} else {
			if err := state.ToHeader(); err != nil {
				return nil, nil, err
			}
			got_header = true

			columns := strings.Count(line, "\t") + 1
			if columns < vcfc.VcfRequiredColCount {
				return nil, nil, &vcfc.ValidationError{Message: "VCF header did not have enough columns"}
			}
			schema.SampleCount = vcfc.SampleCountFromColumns(columns)
		}

		lines = append(lines, line)
	}

	return lines, schema, nil
}
