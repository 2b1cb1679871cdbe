package vcfc

// VCF file format 4.2, 4.3 require 8 tab-separated columns at the start of a
// row, followed by a variable number of columns depending on sample count.
const VcfRequiredColCount = 8

// Genotype terms the sample encoder knows how to run-length pack. Anything
// else is stored uncompressed behind a flag byte.
const (
	GT00 = "0|0"
	GT01 = "0|1"
	GT10 = "1|0"
	GT11 = "1|1"
)

// Byte packing masks and flag values.
//
// All uncompressed VCF input bytes are ASCII, all leading bits are 0,
// so we can use the value of the first bit as a flag.
// If the first bit is zero, we know it is compressed and a 0|0 genotype.
const (
	SampleMask00   = 0b10000000
	SampleMasked00 = 0b00000000

	// If the first bit is a 1, the first 3 bits are reserved for the genotype flag.
	SampleMask011011 = 0b11100000
	SampleMasked01   = 0b10100000
	SampleMasked10   = 0b11000000
	SampleMasked11   = 0b10000000

	// If the first 3 bits are all 1, this byte is entirely a flag. The low 5
	// bits hold the number of uncompressed columns that follow as literal bytes.
	SampleMaskUncompressed   = 0b11100000
	SampleMaskedUncompressed = 0b11100000
)

// Run length limits per flag shape.
const (
	// first bit 0 means this is a 0|0 term, 7 bits left for the count
	MaxDedup00 = 0x7F
	// first 3 bits reserved, 5 bits left for the count
	MaxDedup011011 = 0x1F
)
