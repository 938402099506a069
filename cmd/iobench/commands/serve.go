package commands

import (
	"iobench"
	"iobench/index"
	"iobench/logging"
	"iobench/redis"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func NewServeCommand() *cobra.Command {

	var (
		addr       string
		dirPath    string
		reportPath string
		indexType  string
	)

	command := &cobra.Command{
		Use:   "serve",
		Short: "Serve recorded trials over the redis protocol",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.NewLogger().Named("serve")
			typ, err := parseIndexType(indexType)
			if err != nil {
				cmd.HelpFunc()(cmd, args)
				return err
			}
			indexer, err := loadIndex(typ, dirPath, reportPath, logger)
			if err != nil {
				logger.Errorw("Failed to load recorded trials", zap.Error(err))
				return err
			}
			defer func() {
				_ = indexer.Close()
			}()

			svr := redis.NewResultServer(addr, indexer, logger)
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			go func() {
				<-ctx.Done()
				logger.Infow("Shutting down result server", "conns", svr.Conns())
				_ = svr.Close()
			}()
			return svr.ListenAndServe()
		},
	}
	command.Flags().StringVar(&addr, "addr", "127.0.0.1:6380", "Listen address")
	command.Flags().StringVar(&dirPath, "dir", iobench.DefaultOptions.DirPath, "Benchmark directory")
	command.Flags().StringVar(&reportPath, "report", iobench.DefaultOptions.ReportPath, "Report file, relative paths resolve inside --dir")
	command.Flags().StringVar(&indexType, "index-type", "btree", "Index type, bptree serves the results index persisted in --dir")
	return command
}

// loadIndex 持久化的 B+ 树索引直接打开, 内存索引从报告文件中加载
func loadIndex(typ iobench.IndexType, dirPath, reportPath string, logger *zap.SugaredLogger) (index.Indexer, error) {
	if typ == iobench.BPlusTree {
		return index.NewBPlusTree(dirPath, false)
	}
	if !filepath.IsAbs(reportPath) {
		reportPath = filepath.Join(dirPath, reportPath)
	}
	records, err := iobench.LoadReport(reportPath)
	if err != nil {
		return nil, err
	}
	indexer, err := index.NewIndexer(typ, dirPath, false)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if old := indexer.Put(records[i].Key(), &records[i]); old != nil {
			logger.Warnw("Duplicated trial in report, keeping the last one", "trial", string(records[i].Key()))
		}
	}
	return indexer, nil
}
