package vcfc

import "strings"

// CompressDataLine encodes one VCF data line into the framed binary record
// layout and appends it to dst, returning the extended slice.
//
// The record starts with two 4 byte length headers: the total record length
// after the first header, then the byte length of the raw required-columns
// section. Both are back-patched once the record body is complete. The 8
// required columns plus the FORMAT column are stored raw; the sample columns
// are run-length packed into single flag bytes where possible.
func CompressDataLine(dst []byte, line string, schema *CompressionSchema) ([]byte, error) {
	terms := strings.Split(line, "\t")
	if len(terms) < VcfRequiredColCount {
		return dst, validationErrorf("VCF data line did not contain at least %d terms", VcfRequiredColCount)
	}

	base := len(dst)
	// reserve both length header words, patched below
	dst = append(dst, 0xC0, 0, 0, 0, 0xC0, 0, 0, 0)

	// store the non-sample columns uncompressed
	required_start := len(dst)
	for i := 0; i < VcfRequiredColCount; i++ {
		if i > 0 {
			dst = append(dst, '\t')
		}
		dst = append(dst, terms[i]...)
	}

	var samples []string
	if len(terms) > VcfRequiredColCount {
		// the FORMAT column is stored raw along with the required columns
		dst = append(dst, '\t')
		dst = append(dst, terms[VcfRequiredColCount]...)
		samples = terms[VcfRequiredColCount+1:]
	}
	if len(samples) != schema.SampleCount {
		return dst, validationErrorf("VCF data line had %d samples, schema expects %d",
			len(samples), schema.SampleCount)
	}
	if len(samples) > 0 {
		// separator between the raw section and the first sample
		dst = append(dst, '\t')
	}

	required_length := uint32(len(dst) - required_start)
	if err := EncodeLengthHeader(dst[base+4:base+8], required_length); err != nil {
		return dst, err
	}

	for i := 0; i < len(samples); {
		sample_val := samples[i]
		switch {
		case sample_val == GT00:
			count := 1
			i++
			for count < MaxDedup00 && i < len(samples) && samples[i] == GT00 {
				count++
				i++
			}
			dst = append(dst, SampleMasked00|byte(count))
		case sample_val == GT01 || sample_val == GT10 || sample_val == GT11:
			count := 1
			i++
			for count < MaxDedup011011 && i < len(samples) && samples[i] == sample_val {
				count++
				i++
			}
			var flag byte
			switch sample_val {
			case GT01:
				flag = SampleMasked01
			case GT10:
				flag = SampleMasked10
			default:
				flag = SampleMasked11
			}
			dst = append(dst, flag|byte(count))
		default:
			// this sample's allele genotype was higher than ALT 1 (>= 2), or
			// an unphased/missing call; rare by the VCF definition, so store
			// it as-is behind an uncompressed flag
			dst = append(dst, SampleMaskedUncompressed|1)
			dst = append(dst, sample_val...)
			if i < len(samples)-1 {
				dst = append(dst, '\t')
			}
			i++
		}
	}

	dst = append(dst, '\n')

	// the total length includes the required-columns header word but not the
	// leading line length header word itself
	line_length := uint32(len(dst) - base - LineLengthHeaderSize)
	if err := EncodeLengthHeader(dst[base:base+LineLengthHeaderSize], line_length); err != nil {
		return dst, err
	}
	return dst, nil
}
