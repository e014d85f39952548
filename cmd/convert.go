// Package cmd: convert command.
// This is the main command that orchestrates the pipeline:
// read → detect/normalize → render → write.
//
// It handles flag validation, output placement, and the stdin and --all modes.
package cmd

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gaurav-prasanna/chatpipe/core"
	"github.com/gaurav-prasanna/chatpipe/core/fetch"
	"github.com/gaurav-prasanna/chatpipe/core/output"
	"github.com/gaurav-prasanna/chatpipe/core/pipeline"
	"github.com/gaurav-prasanna/chatpipe/core/render"
	"github.com/gaurav-prasanna/chatpipe/discover"
)

// Mode flags. Settings that make sense in a config file live in viper.
var (
	flagAll    bool
	flagStdout bool
)

var convertCmd = &cobra.Command{
	Use:   "convert <file>",
	Short: "Convert a chat export to Markdown or Workbench JSON",
	Long: `Convert reads a chat export, detects whether it is Playground JSON,
Workbench JSON or a ChatGPT HTML page, and writes it out as Markdown or
Workbench JSON next to the input (chat.json → chat.md / chat_converted.json).

Workbench output only has room for roles and message text: the model name and
title of the source are not carried over.

Examples:
  chatpipe convert chat.json
  chatpipe convert export.html --format workbench
  chatpipe convert - < chat.json
  chatpipe convert ./exports --all --output_dir ./out`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	// Mode flags.
	convertCmd.Flags().BoolVar(&flagAll, "all", false, "Convert every export found under the given directory")
	convertCmd.Flags().BoolVar(&flagStdout, "stdout", false, "Write the result to stdout instead of a file")

	// Output settings.
	convertCmd.Flags().String("format", string(core.FormatMarkdown), "Output format: markdown or workbench")
	convertCmd.Flags().String("output_dir", "", "Output directory (default: next to the input)")
	convertCmd.Flags().String("title", "", "Title for the Markdown heading (default: source title or file name)")
	convertCmd.Flags().Bool("frontmatter", false, "Prepend YAML front matter to Markdown output")
	convertCmd.Flags().Bool("envelope", false, `Wrap Workbench output in {"messages": [...]}`)

	for _, name := range []string{"format", "output_dir", "title", "frontmatter", "envelope"} {
		_ = viper.BindPFlag(name, convertCmd.Flags().Lookup(name))
	}
}

func runConvert(cmd *cobra.Command, args []string) error {
	input := args[0]

	if err := validateFlags(input); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	p := pipeline.New(pipeline.Options{
		Title: cfg.Title,
		Render: render.Options{
			Frontmatter: cfg.Frontmatter,
			Envelope:    cfg.Envelope,
		},
		Logger: logger,
	})
	fetcher := fetch.NewWithStdin(cmd.InOrStdin())
	ctx := context.Background()

	if flagStdout || input == fetch.StdinPath {
		return runStdout(ctx, cmd.OutOrStdout(), input, cfg, fetcher, p)
	}

	writer, err := output.New(cfg.OutputDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}

	if flagAll {
		return runAll(ctx, cmd.OutOrStdout(), cmd.ErrOrStderr(), input, cfg, fetcher, p, writer)
	}
	return runOnly(ctx, cmd.OutOrStdout(), input, cfg, fetcher, p, writer)
}

// validateFlags rejects mode combinations that have no sensible meaning.
func validateFlags(input string) error {
	if flagAll && flagStdout {
		return fmt.Errorf("--all and --stdout are mutually exclusive")
	}
	if flagAll && input == fetch.StdinPath {
		return fmt.Errorf("--all needs a directory, not stdin")
	}
	return nil
}

// runStdout converts a single input and prints the result.
func runStdout(ctx context.Context, out io.Writer, input string, cfg Config, fetcher core.Fetcher, p *pipeline.Pipeline) error {
	res, err := processFile(ctx, input, cfg.Format, fetcher, p)
	if err != nil {
		return err
	}
	_, err = out.Write(res.Output)
	return err
}

// runOnly converts a single file and writes the output next to it.
func runOnly(
	ctx context.Context,
	out io.Writer,
	input string,
	cfg Config,
	fetcher core.Fetcher,
	p *pipeline.Pipeline,
	writer *output.Writer,
) error {
	res, err := processFile(ctx, input, cfg.Format, fetcher, p)
	if err != nil {
		return err
	}

	path, err := writer.Write(input, res.Output, res.Suffix)
	if err != nil {
		return err
	}
	successColor.Fprintf(out, "✓ Written: %s\n", path)
	return nil
}

// runAll discovers every export below root and converts each one. A failed
// file is reported and counted without stopping the batch.
func runAll(
	ctx context.Context,
	out, errOut io.Writer,
	root string,
	cfg Config,
	fetcher core.Fetcher,
	p *pipeline.Pipeline,
	writer *output.Writer,
) error {
	files, err := discover.DiscoverAll(ctx, root)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	absRoot := discover.NormalizePath(root)

	fmt.Fprintf(out, "Found %d files to convert\n", len(files))

	var errCount int
	targets := make(map[string]string) // output path → input that produced it
	for i, file := range files {
		rel, relErr := filepath.Rel(absRoot, file)
		if relErr != nil {
			rel = file
		}
		fmt.Fprintf(out, "[%d/%d] Converting %s\n", i+1, len(files), rel)

		res, err := processFile(ctx, file, cfg.Format, fetcher, p)
		if err != nil {
			errorColor.Fprintf(errOut, "  ✗ Error: %v\n", err)
			errCount++
			continue
		}

		target := discover.NormalizePath(writer.PathUnder(absRoot, file, res.Suffix))
		if prev, ok := targets[target]; ok {
			errorColor.Fprintf(errOut, "  ✗ Error: %s: output %s already written for %s\n", rel, target, prev)
			errCount++
			continue
		}
		targets[target] = rel

		path, err := writer.WriteUnder(absRoot, file, res.Output, res.Suffix)
		if err != nil {
			errorColor.Fprintf(errOut, "  ✗ Write error: %v\n", err)
			errCount++
			continue
		}
		successColor.Fprintf(out, "  ✓ Written: %s\n", path)
	}

	if errCount > 0 {
		return fmt.Errorf("%d/%d files failed", errCount, len(files))
	}
	return nil
}

// processFile runs a single input through the full pipeline.
func processFile(
	ctx context.Context,
	input string,
	format core.Format,
	fetcher core.Fetcher,
	p *pipeline.Pipeline,
) (*pipeline.Result, error) {
	// 1. Read
	in, err := fetcher.Fetch(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	// 2-3. Detect, normalize, render
	res, err := p.Convert(in, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", displayName(input), err)
	}

	logger.WithFields(logrus.Fields{
		"input":  input,
		"source": res.Conversation.Source,
		"format": format,
	}).Info("Converted")

	return res, nil
}

func displayName(input string) string {
	if input == fetch.StdinPath {
		return "stdin"
	}
	return input
}
