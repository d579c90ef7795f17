package main

import (
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/mengyangyangs/CodeAutoTranslate/internal/dispatch"
)

var targetLang string

var annotateCmd = &cobra.Command{
	Use:   "annotate <file>",
	Short: "Comment a local file and print the result",
	Long:  "Run one file through the configured provider and write the commented code to stdout.",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnnotate,
}

func init() {
	annotateCmd.Flags().StringVarP(&targetLang, "lang", "l", "", "language for the comments (default: configured default_target_lang)")
	rootCmd.AddCommand(annotateCmd)
}

func runAnnotate(cmd *cobra.Command, args []string) error {
	cfg, err := setup()
	if err != nil {
		return err
	}

	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if !utf8.Valid(data) {
		return fmt.Errorf("%s: file is not valid UTF-8 text", path)
	}

	lang := targetLang
	if lang == "" {
		lang = cfg.DefaultTargetLang
	}

	d, err := buildDispatcher(cfg)
	if err != nil {
		return err
	}

	out, err := d.Annotate(cmd.Context(), dispatch.Request{Filename: path, Code: string(data), TargetLang: lang})
	if err != nil {
		return errors.New(d.Redact(err.Error()))
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
	return err
}
