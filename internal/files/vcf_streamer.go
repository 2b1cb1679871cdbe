package files

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

func read_header(header_line string) map[int]string {
	mapping_dict := make(map[int]string)

	split_header := strings.Split(strings.TrimSpace(header_line), "\t")

	for indx, colname := range split_header {
		mapping_dict[indx] = colname
	}

	return mapping_dict
}

// VcfStreamer reads a text VCF from a stream, typically stdin fed by
// bcftools, handing out one data line at a time once the metadata and header
// lines have been consumed.
type VcfStreamer struct {
	Scanner             *bufio.Scanner
	Header_col_mappings map[int]string
	Next_line           string
}

func NewVcfStreamer(source io.Reader, bufferSize int) *VcfStreamer {
	buf := make([]byte, 0, bufferSize)
	scanner := bufio.NewScanner(source)
	scanner.Buffer(buf, bufferSize)
	return &VcfStreamer{Scanner: scanner}
}

// The stream will have metadata lines, the header line, and then it will get
// to the variants. We process the metadata and header lines here.
func (vcfStreamer *VcfStreamer) Initialize() error {
	for vcfStreamer.Scanner.Scan() {
		line := vcfStreamer.Scanner.Text()
		if strings.HasPrefix(line, "##") {
			continue
		} else if strings.HasPrefix(line, "#") {
			vcfStreamer.Header_col_mappings = read_header(line)
		} else {
			vcfStreamer.Next_line = line
			break
		}
	}
	if vcfStreamer.Scanner.Err() != nil {
		return fmt.Errorf("the following error was encountered while trying to read through the vcf info lines and header lines: %w", vcfStreamer.Scanner.Err())
	}
	return nil
}

func (vcfStreamer *VcfStreamer) ReadNextLine() {
	if vcfStreamer.Scanner.Scan() {
		vcfStreamer.Next_line = vcfStreamer.Scanner.Text()
	} else {
		vcfStreamer.Next_line = ""
	}
}

func (vcfStreamer *VcfStreamer) CheckErrs() error {
	if vcfStreamer.Scanner.Err() != nil {
		return fmt.Errorf("encountered the following error while attempting to parse the input vcf file stream: %w", vcfStreamer.Scanner.Err())
	}
	return nil
}
