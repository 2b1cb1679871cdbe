package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/pprof"

	"github.com/spf13/cobra"

	"go-vcfc/logger"
)

var profile_fh *os.File

var RootCmd = &cobra.Command{
	Use:   "vcfc",
	Short: "CLI tool to compress VCF sequencing files into a compact binary form, restore them back to text, and build sparse files with O(1) random access by reference and position",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		profile_path, _ := cmd.Flags().GetString("cpu-profile")
		if profile_path == "" {
			return nil
		}
		f, err := os.Create(profile_path)
		if err != nil {
			return fmt.Errorf("error creating CPU profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			f.Close()
			return fmt.Errorf("error starting CPU profile: %w", err)
		}
		profile_fh = f
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if profile_fh != nil {
			pprof.StopCPUProfile()
			profile_fh.Close()
			profile_fh = nil
		}
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Encountered the following error while running the application: %s\n", err)
		os.Exit(1)
	}
}

// command_logger builds the logger for a command run from the persistent
// logging flags.
func command_logger(cmd *cobra.Command) (*slog.Logger, io.Closer, error) {
	log_level, _ := cmd.Flags().GetString("log-level")
	log_filepath, _ := cmd.Flags().GetString("log-filepath")
	return logger.CreateLogger(log_level, log_filepath)
}

// check_in_out_paths enforces that a command never reads and writes the same
// file.
func check_in_out_paths(input_path string, output_path string) error {
	if input_path == output_path {
		return fmt.Errorf("input and output file are the same")
	}
	return nil
}

func init() {
	RootCmd.PersistentFlags().IntP("buffersize", "b", 5012*5012, "buffersize to use while reading through the input data")
	RootCmd.PersistentFlags().String("log-level", "info", "logging level to run the command at (debug, info, warn)")
	RootCmd.PersistentFlags().String("log-filepath", "", "Filepath to also write the log messages to. Defaults to stderr only")
	RootCmd.PersistentFlags().String("cpu-profile", "", "Filepath to write a CPU profile of the command to")
}
