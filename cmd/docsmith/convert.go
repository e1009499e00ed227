// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/docsmith/internal/convert"
	"github.com/pdiddy/docsmith/internal/history"
	"github.com/pdiddy/docsmith/pkg/types"
)

// --- convert subcommand ---

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert an assembled document to DOCX and/or PDF",
	Long: `Convert runs pandoc over dist/<filename> for one document and writes
dist/docx/<name>_YYYYMMDD.docx and dist/pdfs/<name>_YYYYMMDD.pdf. When the
full styling options fail, the conversion is retried once with degraded
options (no reference template for DOCX; the fallback engine and no main
font for PDF).

pandoc runs locally when installed, otherwise inside a container image via
docker or podman. Use --backend to force one or the other.`,
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	doc, err := requireFlag(cmd, "doc")
	if err != nil {
		return err
	}
	c, formats, err := newConverter(cmd)
	if err != nil {
		return err
	}

	ctx := context.Background()
	result, err := c.ConvertDocument(ctx, doc, formats, os.Stdout)
	if err != nil {
		return err
	}
	recordConversion(ctx, c, doc, result)

	if result.HasFailures() {
		return fmt.Errorf("conversion of %s failed", doc)
	}
	return nil
}

// --- convert-all subcommand ---

var convertAllCmd = &cobra.Command{
	Use:   "convert-all",
	Short: "Convert every assembled document in dist/",
	RunE:  runConvertAll,
}

func runConvertAll(cmd *cobra.Command, args []string) error {
	c, formats, err := newConverter(cmd)
	if err != nil {
		return err
	}

	batch, err := c.ConvertAll(context.Background(), formats, os.Stdout)
	if err != nil {
		return err
	}
	if batch.HasFailures() {
		return fmt.Errorf("%d document(s) failed conversion", batch.Failed)
	}
	return nil
}

// --- clean subcommand ---

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove dated DOCX and PDF outputs older than --days",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		days, _ := cmd.Flags().GetInt("days")
		_, err = convert.New(st, nil, conversionConfig(cmd), logger).Clean(days, os.Stdout)
		return err
	},
}

// conversionConfig reads conversion settings, letting --backend and
// --image on the command line override settings and environment.
func conversionConfig(cmd *cobra.Command) types.ConversionConfig {
	cfg := types.ConversionConfig{
		Backend:           types.ConversionBackend(viper.GetString("conversion.backend")),
		Image:             viper.GetString("conversion.image"),
		TOCDepth:          viper.GetInt("conversion.toc_depth"),
		PDFEngine:         viper.GetString("conversion.pdf_engine"),
		FallbackPDFEngine: viper.GetString("conversion.fallback_pdf_engine"),
		MainFont:          viper.GetString("conversion.main_font"),
	}
	if f := cmd.Flags().Lookup("backend"); f != nil && f.Changed {
		cfg.Backend = types.ConversionBackend(f.Value.String())
	}
	if f := cmd.Flags().Lookup("image"); f != nil && f.Changed {
		cfg.Image = f.Value.String()
	}
	return convert.Defaults(cfg)
}

func newConverter(cmd *cobra.Command) (*convert.Converter, []types.OutputFormat, error) {
	format, _ := cmd.Flags().GetString("format")
	formats, err := convert.ParseFormats(format)
	if err != nil {
		return nil, nil, err
	}
	st, err := openStore()
	if err != nil {
		return nil, nil, err
	}

	cfg := conversionConfig(cmd)
	runner, err := convert.NewRunner(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("pandoc runner selected", "runner", runner.Name())
	return convert.New(st, runner, cfg, logger), formats, nil
}

func recordConversion(ctx context.Context, c *convert.Converter, doc string, result *convert.Result) {
	run := history.Run{Kind: history.KindConvert, Document: doc, Output: result.Source}
	for _, o := range result.Outputs {
		if o.Err != nil {
			run.Failed++
		} else {
			run.Succeeded++
		}
	}
	recordRun(ctx, c.Workspace(), run)
}

func init() {
	for _, c := range []*cobra.Command{convertCmd, convertAllCmd} {
		c.Flags().String("format", "both", "output format: docx, pdf, or both")
		c.Flags().String("backend", "", "pandoc backend: auto, local, or container")
		c.Flags().String("image", "", "container image providing pandoc")
	}
	convertCmd.Flags().String("doc", "", "name of the document to convert (required)")
	cleanCmd.Flags().Int("days", 30, "keep outputs dated within this many days")

	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(convertAllCmd)
	rootCmd.AddCommand(cleanCmd)
}
