package commands

import (
	"fmt"
	"io"
	"iobench"
	"iobench/logging"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

func NewRunCommand() *cobra.Command {

	var (
		opts      = iobench.DefaultOptions
		indexType string
	)

	command := &cobra.Command{
		Use:   "run",
		Short: "Run the benchmark matrix and write the CSV report",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.NewLogger().Named("run")
			typ, err := parseIndexType(indexType)
			if err != nil {
				cmd.HelpFunc()(cmd, args)
				return err
			}
			opts.IndexType = typ

			bm, err := iobench.Open(opts)
			if err != nil {
				logger.Errorw("Failed to open benchmark", zap.Error(err))
				return err
			}

			ctx, stop := signal.NotifyContext(logging.WithLogger(cmd.Context(), logger), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if err := bm.Run(ctx); err != nil {
				logger.Errorw("Benchmark stopped", zap.Error(err))
				return multierr.Append(err, bm.Close())
			}
			if err := printSummary(cmd.OutOrStdout(), bm); err != nil {
				return multierr.Append(err, bm.Close())
			}
			logger.Infow("Benchmark finished", "report", bm.ReportFileName())
			return bm.Close()
		},
	}
	command.Flags().StringVar(&opts.DirPath, "dir", opts.DirPath, "Directory of the scratch files and the report")
	command.Flags().StringVar(&opts.FilePrefix, "prefix", opts.FilePrefix, "Scratch file name prefix")
	command.Flags().Int64Var(&opts.FileSize, "size", opts.FileSize, "Number of bytes written by every write trial")
	command.Flags().IntSliceVar(&opts.BlockSizes, "block-sizes", opts.BlockSizes, "Block sizes of the block-by-block strategies, e.g. 500,50,5")
	command.Flags().StringVar(&opts.ReportPath, "report", opts.ReportPath, "Report file, relative paths resolve inside --dir")
	command.Flags().IntVar(&opts.BufferSize, "buffer-size", opts.BufferSize, "Buffer size of the buffered strategies")
	command.Flags().StringVar(&indexType, "index-type", "btree", "Results index type, one of btree, art, bptree")
	command.Flags().BoolVar(&opts.SyncWrites, "sync-writes", opts.SyncWrites, "Fsync the report after every row")
	command.Flags().BoolVar(&opts.VerifyWrites, "verify", opts.VerifyWrites, "Check every scratch file after the write trial")
	return command
}

func printSummary(w io.Writer, bm *iobench.Benchmark) error {
	for _, record := range bm.ListRecords() {
		if _, err := fmt.Fprintf(w, "%-5s %-34s %6d %12d %8d ms\n",
			record.Operation, record.Strategy, record.BlockSize, record.FileSizeInBytes, record.DurationInMs); err != nil {
			return err
		}
	}
	stat, err := bm.Stat()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "trials: %d, failed: %d, scratch files: %d, disk usage: %d bytes\n",
		stat.TrialNum, stat.FailedTrialNum, stat.ScratchFileNum, stat.DiskSize)
	return err
}
