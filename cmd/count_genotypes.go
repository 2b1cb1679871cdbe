package cmd

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"go-vcfc/internal/files"
	"go-vcfc/internal/vcfc"
)

var count_genotypes_cmd = &cobra.Command{
	Use:   "count-genotypes",
	Short: "count genotype call occurrences in a text VCF streamed in on stdin, for sizing how compressible the sample columns are",
	Args:  cobra.NoArgs,
	RunE:  run_count_genotypes,
}

func update_genotype_count(call string, genotype_counts map[string]int) {
	genotype_counts[call]++
}

func print_genotype_counts(genotype_counts map[string]int) {
	// sorted output keeps runs of the same file comparable
	for _, call := range slices.Sorted(maps.Keys(genotype_counts)) {
		fmt.Fprintf(os.Stdout, "%s %d\n", call, genotype_counts[call])
	}
}

func run_count_genotypes(cmd *cobra.Command, args []string) error {
	buffersize, _ := cmd.Flags().GetInt("buffersize")
	per_line, _ := cmd.Flags().GetBool("per-line")

	vcfStreamer := files.NewVcfStreamer(os.Stdin, buffersize)
	if err := vcfStreamer.Initialize(); err != nil {
		return err
	}

	totals := make(map[string]int)

	for vcfStreamer.Next_line != "" {
		split_line := strings.Split(strings.TrimSpace(vcfStreamer.Next_line), "\t")
		if len(split_line) > vcfc.VcfRequiredColCount+1 {
			line_counts := totals
			if per_line {
				line_counts = make(map[string]int)
			}
			for _, call := range split_line[vcfc.VcfRequiredColCount+1:] {
				update_genotype_count(call, line_counts)
			}
			if per_line {
				fmt.Fprintf(os.Stdout, "%s:%s\n", split_line[0], split_line[1])
				print_genotype_counts(line_counts)
			}
		}
		vcfStreamer.ReadNextLine()
	}
	if err := vcfStreamer.CheckErrs(); err != nil {
		return err
	}

	if !per_line {
		print_genotype_counts(totals)
	}
	return nil
}

func init() {
	RootCmd.AddCommand(count_genotypes_cmd)
	count_genotypes_cmd.Flags().Bool("per-line", false, "print a separate count table per variant line instead of file totals")
}
