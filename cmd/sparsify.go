package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"go-vcfc/internal/sparse"
)

var sparsify_cmd = &cobra.Command{
	Use:   "sparsify INPUT OUTPUT",
	Short: "relocate the records of a compressed file into a sparse file addressable by reference and position",
	Args:  cobra.ExactArgs(2),
	RunE:  run_sparsify,
}

func run_sparsify(cmd *cobra.Command, args []string) error {
	input_path, output_path := args[0], args[1]
	if err := check_in_out_paths(input_path, output_path); err != nil {
		return err
	}

	buffersize, _ := cmd.Flags().GetInt("buffersize")
	log, log_closer, err := command_logger(cmd)
	if err != nil {
		return err
	}
	if log_closer != nil {
		defer log_closer.Close()
	}

	start_time := time.Now()
	log.Info("began sparsifying", "input", input_path, "output", output_path)

	if err := sparse.SparsifyFile(input_path, output_path, sparse.NewConfig(), buffersize, log); err != nil {
		return err
	}

	log.Info("total sparsification time", "duration", time.Since(start_time).String())
	return nil
}

func init() {
	RootCmd.AddCommand(sparsify_cmd)
}
