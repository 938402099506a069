package commands

import (
	"fmt"
	"iobench"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

const CLIName = "iobench"

var rootCmd = &cobra.Command{
	Use:   CLIName,
	Short: "Measure the cost of buffered and unbuffered file I/O",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.HelpFunc()(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(NewRunCommand())
	rootCmd.AddCommand(NewServeCommand())
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func parseIndexType(name string) (iobench.IndexType, error) {
	switch strings.ToLower(name) {
	case "btree":
		return iobench.Btree, nil
	case "art":
		return iobench.ART, nil
	case "bptree":
		return iobench.BPlusTree, nil
	default:
		return 0, fmt.Errorf("unsupported index type %q", name)
	}
}
