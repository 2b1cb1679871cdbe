package files

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	gzip "github.com/klauspost/pgzip"
)

// FileReader wraps a buffered scanner over an input file, keeping the
// underlying handles so they can all be closed when reading is done. Input
// files ending in .gz are decompressed transparently.
type FileReader struct {
	Filename    string
	FileScanner *bufio.Scanner
	handles     []io.Closer
}

// MakeFileReader opens filename for line scanning with the given buffer size.
// A .gz suffix routes the file through a parallel gzip reader first.
func MakeFileReader(filename string, buffersize int) (*FileReader, error) {
	fh, open_err := os.Open(filename)
	if open_err != nil {
		return nil, fmt.Errorf("encountered the following error while opening the file: %w", open_err)
	}

	handles := []io.Closer{fh}
	var source io.Reader = fh

	if strings.HasSuffix(filename, ".gz") {
		gh, gzip_err := gzip.NewReader(fh)
		if gzip_err != nil {
			fh.Close()
			return nil, fmt.Errorf("encountered the following error while trying to decompress the file: %w", gzip_err)
		}
		handles = append(handles, gh)
		source = gh
	}

	buf := make([]byte, 0, buffersize)
	scanner := bufio.NewScanner(source)
	scanner.Buffer(buf, buffersize)

	return &FileReader{Filename: filename, FileScanner: scanner, handles: handles}, nil
}

// MakeBinaryReader opens filename for buffered byte reads, for compressed
// record streams rather than text lines.
func MakeBinaryReader(filename string, buffersize int) (*bufio.Reader, io.Closer, error) {
	fh, open_err := os.Open(filename)
	if open_err != nil {
		return nil, nil, fmt.Errorf("encountered the following error while opening the file: %w", open_err)
	}
	return bufio.NewReaderSize(fh, buffersize), fh, nil
}

// Close closes the gzip layer before the file handle beneath it.
func (fr *FileReader) Close() error {
	var first_err error
	for i := len(fr.handles) - 1; i >= 0; i-- {
		if err := fr.handles[i].Close(); err != nil && first_err == nil {
			first_err = err
		}
	}
	return first_err
}
