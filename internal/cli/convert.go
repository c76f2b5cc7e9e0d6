package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tsawler/docxtree"
)

var convertCmd = &cobra.Command{
	Use:   "convert <input.docx>",
	Short: "Convert a .docx file to a JSON content tree",
	Long: `Convert a .docx file to a JSON content tree.

Images are written to the asset directory as Image_<relationship id>.png and
referenced from the tree by that name. Settings can also come from a TOML
file given with --config; flags override the file.

Examples:
  docxtree convert report.docx
  docxtree convert report.docx -o report.json --assets report_assets
  docxtree convert report.docx -o - --headers`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringP("output", "o", "output.json", "output file, or - for stdout")
	convertCmd.Flags().String("assets", ".", "directory that receives extracted images")
	convertCmd.Flags().Bool("headers", false, "also collect header and footer text")
	convertCmd.Flags().Bool("in-order-math", false, "join math paragraph fragments in document order")
	convertCmd.Flags().String("ocr", "", "recognise text in images with this Tesseract language (needs -tags ocr)")
	convertCmd.Flags().String("config", "", "TOML config file")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	input := args[0]

	cfg := DefaultConfig()
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if err := cfg.applyFlags(cmd); err != nil {
		return fmt.Errorf("reading flags: %w", err)
	}

	logger := newLogger(cmd.ErrOrStderr(), cfg.Verbose)

	ext := docxtree.Open(input).WithLogger(logger)
	if cfg.AssetDir != "" {
		ext = ext.WithAssetDir(cfg.AssetDir)
	}
	if cfg.HeadersFooters {
		ext = ext.IncludeHeadersFooters()
	}
	if cfg.InOrderMath {
		ext = ext.InOrderMath()
	}
	if cfg.OCRLanguage != "" {
		ext = ext.WithOCR(cfg.OCRLanguage)
	}

	tree, warnings, err := ext.Tree()
	if err != nil {
		return fmt.Errorf("converting %s: %w", input, err)
	}
	data, err := docxtree.MarshalTree(tree)
	if err != nil {
		return err
	}

	if cfg.Output == "-" {
		_, err := cmd.OutOrStdout().Write(append(data, '\n'))
		return err
	}
	if err := os.WriteFile(cfg.Output, data, 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	logger.Info("converted", "input", input, "output", cfg.Output, "nodes", tree.Len(), "warnings", len(warnings))
	cmd.Printf("Wrote %s (%d nodes, %d warnings)\n", cfg.Output, tree.Len(), len(warnings))
	return nil
}
