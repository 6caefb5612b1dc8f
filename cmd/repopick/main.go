package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/repopick/repopick/internal/app"
	"github.com/repopick/repopick/internal/config"
	"github.com/repopick/repopick/internal/gitref"
	"github.com/repopick/repopick/internal/utils"
	"github.com/repopick/repopick/pkg/version"
)

var (
	cfgFile string
	verbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "repopick <repo-reference> [subfolder] [target-folder]",
	Short: "Download a single subfolder from a GitHub repository",
	Long: `Repopick extracts one subdirectory from a GitHub repository without
cloning it: the branch is downloaded as a ZIP archive, streamed through,
and only the entries under the requested subfolder are written out.

References:
  owner/repo                                       default branch
  owner/repo#branch                                explicit branch
  https://github.com/owner/repo                    default branch
  https://github.com/owner/repo/tree/branch/path   branch and subfolder`,
	Version:       version.Short(),
	Args:          cobra.RangeArgs(1, 3),
	RunE:          run,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.repopick/config.yaml)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Target directory (default: subfolder basename)")
	rootCmd.PersistentFlags().Duration("timeout", config.DefaultTimeout, "Archive download timeout")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	_ = viper.BindPFlag("output.directory", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("output.quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	_ = viper.BindPFlag("http.timeout", rootCmd.PersistentFlags().Lookup("timeout"))

	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	reference := args[0]

	// Validate up front so a missing subfolder gets usage help rather than
	// a bare pipeline error.
	ref, err := gitref.Parse(reference)
	if err != nil {
		return err
	}
	if ref.Subfolder == "" && len(args) < 2 {
		_ = cmd.Usage()
		return fmt.Errorf("no subfolder given: pass one as an argument or use a /tree/ URL")
	}

	var subfolder, targetDir string
	if len(args) > 1 {
		subfolder = args[1]
	}
	if len(args) > 2 {
		targetDir = args[2]
	} else {
		targetDir = cfg.Output.Directory
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	orchestrator, err := app.NewOrchestrator(app.OrchestratorOptions{
		Config:  cfg,
		Verbose: verbose,
	})
	if err != nil {
		return fmt.Errorf("failed to create orchestrator: %w", err)
	}

	_, err = orchestrator.Run(ctx, app.RunOptions{
		Reference: reference,
		Subfolder: subfolder,
		TargetDir: utils.ExpandPath(targetDir),
	})
	return err
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.Full())
	},
}
