// Command diffrec parses git diff output into structured records and
// renders them as a table, JSON Lines, an LLM summary, or an
// interactive viewer.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/jamesharris-garmin/diffrec/bubbletea"
	"github.com/jamesharris-garmin/diffrec/chroma"
	"github.com/jamesharris-garmin/diffrec/config"
	"github.com/jamesharris-garmin/diffrec/genai"
	"github.com/jamesharris-garmin/diffrec/gitcli"
	"github.com/jamesharris-garmin/diffrec/gitdiff"
	"github.com/jamesharris-garmin/diffrec/parse"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		filePath   string
		repoDir    string
		configPath string
		jsonOut    bool
		summarize  bool
		view       bool
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "diffrec [-- git-diff-args...]",
		Short: "Structure git diff output into per-file change records",
		Long: `diffrec parses the output of git diff into structured per-file
records: paths, renames, modes, blob ids, and hunk content.

Input comes from a patch file (--file), from running git diff in a
repository (--repo, with any extra args passed through), or from stdin.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				configPath = config.DefaultPath()
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			log := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			hunks := gitdiff.NewParser()
			app := &App{
				FilePath: filePath,
				DiffArgs: args,
				Parser:   parse.New(),
				Hunks:    hunks,
				JSONL:    jsonOut,
				Out:      cmd.OutOrStdout(),
			}

			// Running git diff takes over from stdin only when a
			// repository was asked for or args were given.
			if filePath == "" && (repoDir != "" || len(args) > 0) {
				client := gitcli.New(repoDir,
					gitcli.WithGitBin(cfg.GitBin),
					gitcli.WithLogger(log),
				)
				app.Differ = client
				app.Parser = &parse.Parser{Source: client}
			} else {
				app.Input = cmd.InOrStdin()
			}

			if summarize {
				model := cfg.Model
				if model == "" {
					model = genai.DefaultModel
				}
				summarizer, err := genai.NewSummarizer(cmd.Context(), os.Getenv("GEMINI_API_KEY"), model)
				if err != nil {
					return err
				}
				app.Summarizer = summarizer
			}

			if view {
				app.Viewer = &bubbletea.Viewer{
					HunkParser: hunks,
					Tokenizer:  chroma.NewTokenizer(),
					Detector:   chroma.NewDetector(),
				}
			}

			_, err = app.Run(cmd.Context())
			return err
		},
	}

	cmd.Flags().StringVarP(&filePath, "file", "f", "", "read the diff from a patch file")
	cmd.Flags().StringVarP(&repoDir, "repo", "C", "", "run git diff in this repository")
	cmd.Flags().StringVar(&configPath, "config", "", "config file (default: "+config.DefaultPath()+")")
	cmd.Flags().BoolVar(&jsonOut, "jsonl", false, "emit records as JSON Lines")
	cmd.Flags().BoolVar(&summarize, "summarize", false, "summarize the changeset with Gemini")
	cmd.Flags().BoolVar(&view, "view", false, "open the interactive viewer")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	return cmd
}
