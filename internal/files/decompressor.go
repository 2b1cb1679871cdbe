package files

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"

	"go-vcfc/internal/vcfc"
)

// DecompressFile streams the compressed file at input_path back into text
// VCF at output_path. The metadata/header prefix is emitted verbatim, then
// records are decoded one at a time until the source drains. A .gz output
// path re-compresses the text with gzip.
func DecompressFile(input_path string, output_path string, buffersize int, log *slog.Logger) error {
	reader, input_handle, err := MakeBinaryReader(input_path, buffersize)
	if err != nil {
		return err
	}
	defer input_handle.Close()

	meta_header_lines, schema, err := ReadMetadataHeaders(reader)
	if err != nil {
		return err
	}
	log.Debug("parsed compressed file prefix",
		"prefix_lines", len(meta_header_lines), "sample_count", schema.SampleCount)

	writer, err := MakeFileWriter(output_path, buffersize)
	if err != nil {
		return err
	}

	run_err := func() error {
		for _, line := range meta_header_lines {
			// these lines still have the newline char included
			if _, err := writer.Writer.WriteString(line); err != nil {
				return err
			}
		}

		cache := vcfc.NewRunCache()
		var variant_line bytes.Buffer
		variant_line.Grow(16 * 1024)
		variant_line_count := 0

		for {
			variant_line.Reset()
			if _, err := vcfc.DecompressDataLine(reader, schema, cache, &variant_line); err != nil {
				if err == io.EOF {
					break
				}
				return fmt.Errorf("failed to decompress data line %d: %w", variant_line_count+1, err)
			}
			variant_line_count++
			if _, err := writer.Writer.Write(variant_line.Bytes()); err != nil {
				return err
			}
		}

		log.Info("finished decompressing", "variant_count", variant_line_count)
		return nil
	}()

	if close_err := writer.Close(); run_err == nil {
		run_err = close_err
	}
	return run_err
}
