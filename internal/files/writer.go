package files

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// FileWriter wraps a buffered writer over an output file. Output files ending
// in .gz are gzip compressed transparently.
type FileWriter struct {
	Filename string
	Writer   *bufio.Writer
	handles  []io.Closer
}

// MakeFileWriter creates (or truncates) filename for buffered writing. A .gz
// suffix routes the bytes through a gzip writer first.
func MakeFileWriter(filename string, buffersize int) (*FileWriter, error) {
	fh, create_err := os.Create(filename)
	if create_err != nil {
		return nil, fmt.Errorf("there was an issue trying to create the output file %s: %w", filename, create_err)
	}

	handles := []io.Closer{fh}
	var sink io.Writer = fh

	if strings.HasSuffix(filename, ".gz") {
		gw := gzip.NewWriter(fh)
		handles = append(handles, gw)
		sink = gw
	}

	return &FileWriter{
		Filename: filename,
		Writer:   bufio.NewWriterSize(sink, buffersize),
		handles:  handles,
	}, nil
}

// Close flushes the buffer and closes the gzip layer before the file handle
// beneath it.
func (fw *FileWriter) Close() error {
	first_err := fw.Writer.Flush()
	for i := len(fw.handles) - 1; i >= 0; i-- {
		if err := fw.handles[i].Close(); err != nil && first_err == nil {
			first_err = err
		}
	}
	return first_err
}
