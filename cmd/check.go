package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/learnhub/internal/progress"
	"github.com/ziadkadry99/learnhub/internal/remote"
)

var checkTimeout time.Duration

type upstream struct {
	name string
	url  string
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that the configured upstream APIs are reachable",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		client := newClient(cfg)
		e := client.Endpoints()
		targets := []upstream{
			{"auth", e.Auth},
			{"catalog", e.Catalog + "/products"},
			{"todos", e.Todos + "/todos?_limit=1"},
			{"profile", e.Profile + "/api/"},
			{"echo", e.Echo + "/posts/1"},
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), checkTimeout)
		defer cancel()

		results, failed := pingAll(ctx, client, targets)
		for _, line := range results {
			fmt.Println(line)
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d upstreams unreachable", failed, len(targets))
		}
		return nil
	},
}

func pingAll(ctx context.Context, client *remote.Client, targets []upstream) ([]string, int) {
	reporter := progress.NewReporter("Checking upstreams")
	reporter.Start(len(targets))

	var lines []string
	failed := 0
	for i, t := range targets {
		reporter.Update(i, t.name)
		status, err := client.Ping(ctx, t.url)
		switch {
		case err != nil:
			failed++
			lines = append(lines, fmt.Sprintf("  FAIL  %-8s %s (%v)", t.name, t.url, err))
		case status >= 500:
			failed++
			lines = append(lines, fmt.Sprintf("  FAIL  %-8s %s (HTTP %d)", t.name, t.url, status))
		default:
			lines = append(lines, fmt.Sprintf("  OK    %-8s %s (HTTP %d)", t.name, t.url, status))
		}
	}
	reporter.Update(len(targets), "done")
	reporter.Finish()
	return lines, failed
}

func init() {
	checkCmd.Flags().DurationVar(&checkTimeout, "timeout", 30*time.Second, "Overall time limit for all checks")
	rootCmd.AddCommand(checkCmd)
}
