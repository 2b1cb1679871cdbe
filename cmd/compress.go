package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"go-vcfc/internal/files"
)

var compress_cmd = &cobra.Command{
	Use:   "compress INPUT OUTPUT",
	Short: "compress a text VCF file (optionally gzipped) into the binary record format",
	Args:  cobra.ExactArgs(2),
	RunE:  run_compress,
}

func run_compress(cmd *cobra.Command, args []string) error {
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
	log.Info("began compressing", "input", input_path, "output", output_path)

	if err := files.CompressFile(input_path, output_path, buffersize, log); err != nil {
		return err
	}

	log.Info("total compression time", "duration", time.Since(start_time).String())
	return nil
}

func init() {
	RootCmd.AddCommand(compress_cmd)
}
