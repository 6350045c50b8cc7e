// docintel is the batch companion to docinteld: it runs the extraction and
// analysis pipeline over a directory of mortgage documents and writes an
// XLSX review report.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "docintel",
	Short: "Mortgage document intelligence toolkit",
	Long: `docintel extracts text from mortgage documents (PDF, JPEG, PNG),
classifies them, pulls out structured fields and scores the result.

Use "docintel process <dir>" to run the pipeline over a directory and
produce an XLSX report for review.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose progress output")
}
