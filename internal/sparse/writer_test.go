package sparse

import (
	"encoding/binary"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go-vcfc/internal/files"
)

var test_vcf = strings.Join([]string{
	"##fileformat=VCFv4.2",
	"##contig=<ID=1,length=248956422>",
	"#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tFORMAT\tS1\tS2\tS3",
	"1\t5\t.\tA\tT\t99\tPASS\t.\tGT\t0|0\t0|0\t0|0",
	"1\t9\trs1\tG\tC\t50\tPASS\t.\tGT\t0|1\t1|2\t0|0",
	"2\t3\t.\tT\tTA\t12\tq10\t.\tGT\t1|1\t0|0\t./.",
	"",
}, "\n")

var test_lines = []string{
	"1\t5\t.\tA\tT\t99\tPASS\t.\tGT\t0|0\t0|0\t0|0\n",
	"1\t9\trs1\tG\tC\t50\tPASS\t.\tGT\t0|1\t1|2\t0|0\n",
	"2\t3\t.\tT\tTA\t12\tq10\t.\tGT\t1|1\t0|0\t./.\n",
}

func discard_logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// a small test configuration keeps slot addresses within a few hundred KiB
// while still leaving more room per position than any test record needs
func test_config() *Config {
	return NewConfigWith(256, 1, 1000)
}

func make_sparse_file(t *testing.T, vcf_text string) string {
	t.Helper()
	dir := t.TempDir()
	input_path := filepath.Join(dir, "input.vcf")
	if err := os.WriteFile(input_path, []byte(vcf_text), 0o600); err != nil {
		t.Fatalf("writing test vcf: %v", err)
	}
	compressed_path := filepath.Join(dir, "input.vcfc")
	if err := files.CompressFile(input_path, compressed_path, 1<<20, discard_logger()); err != nil {
		t.Fatalf("CompressFile: %v", err)
	}
	sparse_path := filepath.Join(dir, "input.vcfcs")
	if err := SparsifyFile(compressed_path, sparse_path, test_config(), 1<<20, discard_logger()); err != nil {
		t.Fatalf("SparsifyFile: %v", err)
	}
	return sparse_path
}

func TestSparseQuery(t *testing.T) {
	sparse_path := make_sparse_file(t, test_vcf)

	reader, err := OpenReader(sparse_path, test_config())
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer reader.Close()

	if reader.SampleCount() != 3 {
		t.Fatalf("sample count: got %d want 3", reader.SampleCount())
	}

	cases := []struct {
		reference string
		pos       int64
		want      string
	}{
		{"1", 5, test_lines[0]},
		{"1", 9, test_lines[1]},
		{"2", 3, test_lines[2]},
	}
	for _, tc := range cases {
		rec, err := reader.Query(tc.reference, tc.pos)
		if err != nil {
			t.Fatalf("Query(%q, %d): %v", tc.reference, tc.pos, err)
		}
		if rec.Line != tc.want {
			t.Fatalf("Query(%q, %d):\n got %q\nwant %q", tc.reference, tc.pos, rec.Line, tc.want)
		}
	}
}

func TestSparseQueryVacantSlot(t *testing.T) {
	sparse_path := make_sparse_file(t, test_vcf)

	reader, err := OpenReader(sparse_path, test_config())
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer reader.Close()

	// a position between two occupied slots reads hole zeros
	if _, err := reader.Query("1", 6); !errors.Is(err, ErrNoRecord) {
		t.Fatalf("Query of a vacant slot: got %v want ErrNoRecord", err)
	}
	// a slot past the end of the file
	if _, err := reader.Query("M", 999); !errors.Is(err, ErrNoRecord) {
		t.Fatalf("Query past end of file: got %v want ErrNoRecord", err)
	}
}

func TestSparseWalkOrder(t *testing.T) {
	sparse_path := make_sparse_file(t, test_vcf)

	reader, err := OpenReader(sparse_path, test_config())
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer reader.Close()

	var got []string
	if err := reader.Walk(func(rec *Record) error {
		got = append(got, rec.Line)
		return nil
	}); err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if len(got) != len(test_lines) {
		t.Fatalf("walked %d records, want %d", len(got), len(test_lines))
	}
	for i := range got {
		if got[i] != test_lines[i] {
			t.Fatalf("record %d:\n got %q\nwant %q", i, got[i], test_lines[i])
		}
	}
}

func TestSparseSkipChainClosure(t *testing.T) {
	sparse_path := make_sparse_file(t, test_vcf)

	reader, err := OpenReader(sparse_path, test_config())
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer reader.Close()

	var records []*Record
	if err := reader.Walk(func(rec *Record) error {
		records = append(records, rec)
		return nil
	}); err != nil {
		t.Fatalf("Walk: %v", err)
	}

	for i := 1; i < len(records); i++ {
		gap := records[i].Slot - records[i-1].Slot
		if int64(records[i].DistToPrev) != gap {
			t.Fatalf("record %d: dist_to_prev %d, slot gap %d", i, records[i].DistToPrev, gap)
		}
		if int64(records[i-1].DistToNext) != gap {
			t.Fatalf("record %d: previous dist_to_next %d, slot gap %d", i, records[i-1].DistToNext, gap)
		}
	}
	if records[len(records)-1].DistToNext != 0 {
		t.Fatalf("last record dist_to_next: got %d want 0", records[len(records)-1].DistToNext)
	}

	// walking backwards from the last record visits the same slots
	rec := records[len(records)-1]
	for i := len(records) - 2; i >= 0; i-- {
		prev, err := reader.Prev(rec)
		if err != nil {
			t.Fatalf("Prev at record %d: %v", i, err)
		}
		if prev.Slot != records[i].Slot {
			t.Fatalf("backward walk slot mismatch at %d: got %d want %d", i, prev.Slot, records[i].Slot)
		}
		rec = prev
	}
	if _, err := reader.Prev(rec); !errors.Is(err, ErrNoRecord) {
		t.Fatalf("Prev of the first record: got %v want ErrNoRecord", err)
	}
}

func TestSparseFirstSkipField(t *testing.T) {
	sparse_path := make_sparse_file(t, test_vcf)

	reader, err := OpenReader(sparse_path, test_config())
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer reader.Close()

	first, err := reader.First()
	if err != nil {
		t.Fatalf("First: %v", err)
	}
	if first.Line != test_lines[0] {
		t.Fatalf("first record:\n got %q\nwant %q", first.Line, test_lines[0])
	}

	// the first skip must equal the placement offset of the first record
	cfg := test_config()
	want_offset, err := cfg.ComputeSparseOffset("1", 5)
	if err != nil {
		t.Fatalf("ComputeSparseOffset: %v", err)
	}
	raw, err := os.ReadFile(sparse_path)
	if err != nil {
		t.Fatalf("reading sparse file: %v", err)
	}
	data_start := first.Slot - want_offset
	first_skip := binary.LittleEndian.Uint64(raw[data_start-8 : data_start])
	if int64(first_skip) != want_offset {
		t.Fatalf("first skip: got %d want %d", first_skip, want_offset)
	}
}

func TestSparsePrefixPreserved(t *testing.T) {
	sparse_path := make_sparse_file(t, test_vcf)

	raw, err := os.ReadFile(sparse_path)
	if err != nil {
		t.Fatalf("reading sparse file: %v", err)
	}
	header_end := strings.Index(test_vcf, "#CHROM")
	header_end += strings.IndexByte(test_vcf[header_end:], '\n') + 1
	prefix := test_vcf[:header_end]
	if !strings.HasPrefix(string(raw), prefix) {
		t.Fatalf("sparse file does not start with the verbatim metadata and header prefix")
	}
}

func TestSparsifySlotCollision(t *testing.T) {
	duplicated := strings.Join([]string{
		"##fileformat=VCFv4.2",
		"#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tFORMAT\tS1",
		"1\t5\t.\tA\tT\t99\tPASS\t.\tGT\t0|0",
		"1\t5\t.\tA\tG\t99\tPASS\t.\tGT\t0|1",
		"",
	}, "\n")

	dir := t.TempDir()
	input_path := filepath.Join(dir, "input.vcf")
	if err := os.WriteFile(input_path, []byte(duplicated), 0o600); err != nil {
		t.Fatalf("writing test vcf: %v", err)
	}
	compressed_path := filepath.Join(dir, "input.vcfc")
	if err := files.CompressFile(input_path, compressed_path, 1<<20, discard_logger()); err != nil {
		t.Fatalf("CompressFile: %v", err)
	}

	err := SparsifyFile(compressed_path, filepath.Join(dir, "out.vcfcs"), test_config(), 1<<20, discard_logger())
	if err == nil || !strings.Contains(err.Error(), "collision") {
		t.Fatalf("expected a slot collision error, got %v", err)
	}
}

func TestSparsifyUnknownReference(t *testing.T) {
	bad := strings.Join([]string{
		"##fileformat=VCFv4.2",
		"#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tFORMAT\tS1",
		"chr1\t5\t.\tA\tT\t99\tPASS\t.\tGT\t0|0",
		"",
	}, "\n")

	dir := t.TempDir()
	input_path := filepath.Join(dir, "input.vcf")
	if err := os.WriteFile(input_path, []byte(bad), 0o600); err != nil {
		t.Fatalf("writing test vcf: %v", err)
	}
	compressed_path := filepath.Join(dir, "input.vcfc")
	if err := files.CompressFile(input_path, compressed_path, 1<<20, discard_logger()); err != nil {
		t.Fatalf("CompressFile: %v", err)
	}

	err := SparsifyFile(compressed_path, filepath.Join(dir, "out.vcfcs"), test_config(), 1<<20, discard_logger())
	if err == nil || !strings.Contains(err.Error(), "unknown reference name") {
		t.Fatalf("expected an unknown reference error, got %v", err)
	}
}
