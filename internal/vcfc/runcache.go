package vcfc

import "strings"

// RunCache memoizes materialized genotype runs ("0|0\t0|0\t...0|0\t") keyed
// by sample value and run length, so the decoder can append a whole run with
// one copy. Entries are created on first miss and never evicted. The cache is
// owned by the decode session that created it; dropping it changes only
// performance, never output.
type RunCache struct {
	runs map[string]*[256]string
}

func NewRunCache() *RunCache {
	return &RunCache{runs: make(map[string]*[256]string)}
}

func generate_cache_line(sample_value string, run_length uint8) string {
	var cache_line strings.Builder
	cache_line.Grow((len(sample_value) + 1) * int(run_length))
	for counter := run_length; counter > 0; counter-- {
		cache_line.WriteString(sample_value)
		cache_line.WriteByte('\t')
	}
	return cache_line.String()
}

// GetOrSet returns the materialized run for sample_value repeated run_length
// times, each copy followed by a tab.
func (c *RunCache) GetOrSet(sample_value string, run_length uint8) string {
	run_vector, ok := c.runs[sample_value]
	if !ok {
		run_vector = new([256]string)
		c.runs[sample_value] = run_vector
	}
	if run_vector[run_length] == "" && run_length > 0 {
		run_vector[run_length] = generate_cache_line(sample_value, run_length)
	}
	return run_vector[run_length]
}
