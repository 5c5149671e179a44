package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"cpprofile-backend/internal/components/fetch"
	"cpprofile-backend/internal/components/telemetry"
	"cpprofile-backend/internal/scrapers/codechef"
	"cpprofile-backend/internal/scrapers/codeforces"
	"cpprofile-backend/internal/scrapers/leetcode"
	"cpprofile-backend/internal/service"

	"github.com/spf13/cobra"
)

var (
	jsonOutput bool
	verbose    bool
	timeout    time.Duration
	dumpDir    string
)

var svc service.Service

var rootCmd = &cobra.Command{
	Use:   "profile-cli",
	Short: "profile-cli fetches competitive programming profiles without running the server.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		telemetry.InitSlog(verbose)

		var dump fetch.Output
		if dumpDir != "" {
			output, err := fetch.NewDirOutput(dumpDir)
			if err != nil {
				return err
			}
			dump = output
		}
		svc = newService(timeout, dump)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print the raw record as indented json.")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging.")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", time.Second*30, "Timeout of every fetch.")
	rootCmd.PersistentFlags().StringVar(&dumpDir, "dump-http", "", "Write every request/response to this directory.")
}

func newService(timeout time.Duration, dump fetch.Output) service.Service {
	tel := telemetry.SlogAPI{}
	return service.NewService(
		codechef.NewScraper(codechef.DefaultBaseUrl, codechef.NewHttpClient(timeout, dump, tel), tel),
		leetcode.NewScraper(leetcode.DefaultBaseUrl, leetcode.NewHttpClient(timeout, dump, tel), tel),
		codeforces.NewScraper(codeforces.DefaultBaseUrl, codeforces.NewHttpClient(timeout, dump, tel), tel),
		tel,
	)
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
