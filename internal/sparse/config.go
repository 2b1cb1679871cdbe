package sparse

import (
	"go-vcfc/internal/vcfc"
)

// Config holds the sparsification constants. The defaults are compiled into
// the file format: a reader must use the same values as the writer that
// produced the file.
type Config struct {
	MultiplicationFactor int64 // F: offset block multiplier, dependent on VCF file, number of samples
	BlockSize            int64 // B: 4k
	MaxPosition          int64 // L: should be the size of the largest reference

	name_map *vcfc.ReferenceNameMap
}

// NewConfig returns the default sparsification configuration.
func NewConfig() *Config {
	return &Config{
		MultiplicationFactor: 4,
		BlockSize:            4096,
		MaxPosition:          300_000_000,
		name_map:             vcfc.NewReferenceNameMap(),
	}
}

// NewConfigWith returns a configuration with explicit constants. Files
// written with non-default constants can only be read back with the same
// ones.
func NewConfigWith(block_size, multiplication_factor, max_position int64) *Config {
	return &Config{
		MultiplicationFactor: multiplication_factor,
		BlockSize:            block_size,
		MaxPosition:          max_position,
		name_map:             vcfc.NewReferenceNameMap(),
	}
}

// ComputeSparseOffset maps a (reference, position) pair to its deterministic
// byte offset relative to the start of the data region.
func (c *Config) ComputeSparseOffset(reference_name string, pos int64) (int64, error) {
	ref_id, err := c.name_map.ReferenceToInt(reference_name)
	if err != nil {
		return 0, err
	}
	block_offset := c.BlockSize * int64(ref_id) * c.MaxPosition
	in_block_offset := pos * c.MultiplicationFactor * c.BlockSize
	return block_offset + in_block_offset, nil
}

// ReferenceToInt exposes the reference id mapping used by the placement.
func (c *Config) ReferenceToInt(reference_name string) (uint8, error) {
	return c.name_map.ReferenceToInt(reference_name)
}
