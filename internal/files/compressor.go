package files

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"go-vcfc/internal/vcfc"
)

// CompressFile streams the text VCF at input_path through the line encoder
// into output_path. Metadata and header lines are copied verbatim, empty
// lines are dropped, and every other line is encoded as one binary record.
//
// Scanning and encoding run in a reader goroutine and a writer goroutine
// joined by a channel, so decompression of gzip input overlaps with encoding.
// Records are written in input order.
func CompressFile(input_path string, output_path string, buffersize int, log *slog.Logger) error {
	reader, err := MakeFileReader(input_path, buffersize)
	if err != nil {
		return err
	}
	defer reader.Close()

	writer, err := MakeFileWriter(output_path, buffersize)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(context.Background())
	lines := make(chan string, 64)

	g.Go(func() error {
		defer close(lines)
		for reader.FileScanner.Scan() {
			select {
			case lines <- reader.FileScanner.Text():
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		if scan_err := reader.FileScanner.Err(); scan_err != nil {
			return fmt.Errorf("encountered the following error while reading through the input vcf file: %w", scan_err)
		}
		return nil
	})

	g.Go(func() error {
		var state vcfc.LineStateMachine
		schema := &vcfc.CompressionSchema{}
		compressed_line := make([]byte, 0, 4096)
		variant_count := 0

		for linebuf := range lines {
			switch {
			case len(linebuf) == 0:
				// empty input line, ignore
				continue
			case strings.HasPrefix(linebuf, "##"):
				if err := state.ToMeta(); err != nil {
					return err
				}
				// metadata is not compressed, insert in raw format
				if _, err := writer.Writer.WriteString(linebuf); err != nil {
					return err
				}
				if err := writer.Writer.WriteByte('\n'); err != nil {
					return err
				}
			case strings.HasPrefix(linebuf, "#"):
				if err := state.ToHeader(); err != nil {
					return err
				}
				// get the number of samples from the header
				columns := strings.Count(linebuf, "\t") + 1
				if columns < vcfc.VcfRequiredColCount {
					return &vcfc.ValidationError{Message: "VCF header did not have enough columns"}
				}
				schema.SampleCount = vcfc.SampleCountFromColumns(columns)
				log.Debug("parsed header line", "sample_count", schema.SampleCount)
				// insert header in raw format
				if _, err := writer.Writer.WriteString(linebuf); err != nil {
					return err
				}
				if err := writer.Writer.WriteByte('\n'); err != nil {
					return err
				}
			default:
				// treat line as variant
				if err := state.ToVariant(); err != nil {
					return err
				}
				variant_count++
				var compress_err error
				compressed_line, compress_err = vcfc.CompressDataLine(compressed_line[:0], linebuf, schema)
				if compress_err != nil {
					return fmt.Errorf("failed to compress data line %d: %w", variant_count, compress_err)
				}
				if _, err := writer.Writer.Write(compressed_line); err != nil {
					return err
				}
			}
		}

		log.Info("finished compressing", "variant_count", variant_count)
		return nil
	})

	run_err := g.Wait()
	if close_err := writer.Close(); run_err == nil {
		run_err = close_err
	}
	return run_err
}
