package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"go-vcfc/internal/sparse"
)

var query_cmd = &cobra.Command{
	Use:   "query SPARSE_FILE",
	Short: "look up the record at a reference and position in a sparse file and print the restored VCF line",
	Args:  cobra.ExactArgs(1),
	RunE:  run_query,
}

func run_query(cmd *cobra.Command, args []string) error {
	reference_name, _ := cmd.Flags().GetString("reference")
	position, _ := cmd.Flags().GetInt64("position")
	walk_all, _ := cmd.Flags().GetBool("walk")

	reader, err := sparse.OpenReader(args[0], sparse.NewConfig())
	if err != nil {
		return err
	}
	defer reader.Close()

	if walk_all {
		return reader.Walk(func(rec *sparse.Record) error {
			fmt.Fprint(os.Stdout, rec.Line)
			return nil
		})
	}

	if reference_name == "" {
		return fmt.Errorf("a --reference value is required unless --walk is given")
	}

	rec, err := reader.Query(reference_name, position)
	if err != nil {
		if errors.Is(err, sparse.ErrNoRecord) {
			return fmt.Errorf("no record found for %s:%d", reference_name, position)
		}
		return err
	}
	fmt.Fprint(os.Stdout, rec.Line)
	return nil
}

func init() {
	RootCmd.AddCommand(query_cmd)
	query_cmd.Flags().StringP("reference", "r", "", "reference (chromosome) name of the record to look up")
	query_cmd.Flags().Int64P("position", "p", 0, "position of the record to look up")
	query_cmd.Flags().Bool("walk", false, "walk the skip chain and print every record in slot order instead of looking one up")
}
