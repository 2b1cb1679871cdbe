// Package vcfc implements the compressed record codec for VCF data lines.
//
// A compressed record is two 4 byte length headers, the raw tab-joined
// required columns (plus the FORMAT column when present), the run-length
// packed sample columns, and a terminating newline. Genotype calls drawn from
// the small alphabet 0|0, 0|1, 1|0, 1|1 dominate the sample columns of real
// files, so runs of them collapse into single flag bytes; any other call is
// carried verbatim behind an uncompressed marker.
//
// The package also carries the pieces the file-level tooling shares: the
// compression schema derived from the header line, the section state machine,
// the reference-name id map used by sparse placement, and the run cache that
// amortizes decoding of repeated genotype runs.
package vcfc
