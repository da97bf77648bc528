package main

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/docstract/docstract/constants"
	"github.com/docstract/docstract/internal/archive"
	"github.com/docstract/docstract/internal/common"
	"github.com/docstract/docstract/internal/entity"
	"github.com/docstract/docstract/internal/export"
	"github.com/docstract/docstract/internal/extract"
	"github.com/docstract/docstract/internal/ocr"
	"github.com/docstract/docstract/internal/pipeline"
	"github.com/docstract/docstract/internal/repository"
)

var (
	outDir   string
	save     bool
	forceOCR bool
	noFields bool
	verbose  bool
)

var (
	okMark   = color.New(color.FgGreen).SprintFunc()
	failMark = color.New(color.FgRed).SprintFunc()
	warnMark = color.New(color.FgYellow).SprintFunc()
)

var rootCmd = &cobra.Command{
	Use:   "docstract [paths...]",
	Short: "Extract text from documents (PDF, images, Word, Excel, CSV, ZIP)",
	Long: `docstract runs the extraction pipeline over local files without the
HTTP server. Directories are walked for supported files; ZIP archives are
expanded one level deep. Results can be written as JSON next to --out or
saved to the configured document store.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)

		cfg := common.LoadConfig()
		if forceOCR {
			cfg.OCR.ForceOCR = true
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		engine := ocr.NewEngine(ocr.Config{
			Tesseract:     cfg.OCR.Tesseract,
			Pdftoppm:      cfg.OCR.Pdftoppm,
			TesseractLang: cfg.OCR.TesseractLang,
			TessdataDir:   cfg.OCR.TessdataDir,
			DPI:           cfg.OCR.DPI,
			MaxPages:      cfg.OCR.MaxPages,
		}, logger)
		if err := engine.Probe(ctx); err != nil {
			return fmt.Errorf("ocr engine unavailable: %w", err)
		}

		var store repository.DocumentStore
		if save {
			var err error
			store, err = repository.Open(ctx, cfg.Store, logger)
			if err != nil {
				return fmt.Errorf("open document store: %w", err)
			}
			defer store.Close(context.Background())
		}

		registry := extract.NewRegistry(engine, extract.Config{ForceOCR: cfg.OCR.ForceOCR}, logger)
		pl := pipeline.New(registry, logger)
		expander := archive.NewExpander(logger)
		exporter := export.NewService(!noFields, logger)

		items, err := collectItems(expander, args)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return fmt.Errorf("no supported files found")
		}

		var failures int
		for _, item := range items {
			res := pl.Run(ctx, item)
			if res.Err != nil {
				failures++
				fmt.Printf("%s %s: %v\n", failMark("FAIL"), res.SourceName, res.Err)
				continue
			}
			fmt.Printf("%s %s (%d pages, %d tables, %d images)\n",
				okMark("OK"), res.SourceName, len(res.Pages), len(res.Tables), len(res.Images))

			if outDir != "" {
				// CLI results skip the approval step; writing out implies approval.
				data, err := exporter.Single(res)
				if err != nil {
					return err
				}
				dest := filepath.Join(outDir, res.Stem()+".json")
				if err := os.MkdirAll(outDir, 0o755); err != nil {
					return err
				}
				if err := os.WriteFile(dest, data, 0o644); err != nil {
					return err
				}
			}
			if store != nil {
				if err := store.Insert(ctx, res.SourceName, res.Text()); err != nil {
					fmt.Printf("%s save failed for %s: %v\n", warnMark("WARN"), res.SourceName, err)
				}
			}
		}

		fmt.Printf("\n%d processed, %d failed\n", len(items), failures)
		return nil
	},
}

// collectItems gathers FileItems from file and directory arguments.
// ZIP files are expanded one level; directories are walked for supported
// extensions.
func collectItems(expander *archive.Expander, paths []string) ([]entity.FileItem, error) {
	var items []entity.FileItem

	addFile := func(path string) error {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		name := filepath.Base(path)
		if constants.ClassifyFilename(name) == constants.Archive {
			expanded, warnings, err := expander.Expand(data)
			if err != nil {
				return err
			}
			for _, warn := range warnings {
				fmt.Printf("%s %s: %s\n", warnMark("SKIP"), warn.Name, warn.Reason)
			}
			items = append(items, expanded...)
			return nil
		}
		items = append(items, entity.NewFileItem(name, data))
		return nil
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			if err := addFile(path); err != nil {
				return nil, err
			}
			continue
		}
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if strings.HasPrefix(d.Name(), ".") && p != path {
					return fs.SkipDir
				}
				return nil
			}
			if constants.ClassifyFilename(d.Name()) == constants.Unsupported {
				return nil
			}
			return addFile(p)
		})
		if err != nil {
			return nil, err
		}
	}
	return items, nil
}

func init() {
	rootCmd.Flags().StringVarP(&outDir, "out", "o", "", "write one JSON document per file into this directory")
	rootCmd.Flags().BoolVar(&save, "save", false, "insert extracted text into the configured document store")
	rootCmd.Flags().BoolVar(&forceOCR, "force-ocr", false, "OCR every PDF page even when it has embedded text")
	rootCmd.Flags().BoolVar(&noFields, "no-fields", false, "omit derived emails/phones from JSON output")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}
