package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/config"
	"github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/domain"
	"github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/export"
	"github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/extract"
	"github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/interpret"
	_ "github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/llm/gemini"
	_ "github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/llm/openai"
	"github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/logging"
	"github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/service"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "reportctl",
		Short:        "Parse, interpret and export lab reports from the command line",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(parseCmd())
	rootCmd.AddCommand(interpretCmd())
	rootCmd.AddCommand(exportCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func parseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a PDF or text report into rows (stdin when no file is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService()
			if err != nil {
				return err
			}
			result, err := parseInput(cmd.Context(), svc, cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}
	return cmd
}

func interpretCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "interpret [file]",
		Short: "Explain a report in plain language",
		Long: "Parses the report and interprets the resulting rows. With --rows the\n" +
			"input is a JSON array of rows as returned by the parse command.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fromRows, _ := cmd.Flags().GetBool("rows")

			svc, err := newService()
			if err != nil {
				return err
			}

			var rows []domain.ParsedRow
			if fromRows {
				rows, err = readRows(cmd.InOrStdin(), args)
			} else {
				var result *domain.ParseResult
				result, err = parseInput(cmd.Context(), svc, cmd.InOrStdin(), args)
				if result != nil {
					rows = result.Rows
				}
			}
			if err != nil {
				return err
			}

			out, err := svc.Interpret(cmd.Context(), rows)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().Bool("rows", false, "Read a JSON array of parsed rows instead of a report")
	return cmd
}

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Parse a report and write the rows as CSV or XLSX",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatFlag, _ := cmd.Flags().GetString("format")
			outPath, _ := cmd.Flags().GetString("out")

			format, err := export.ParseFormat(formatFlag)
			if err != nil {
				return err
			}

			svc, err := newService()
			if err != nil {
				return err
			}
			result, err := parseInput(cmd.Context(), svc, cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			if outPath == "" {
				name := ""
				if len(args) == 1 {
					name = filepath.Base(args[0])
				}
				outPath = export.BuildFilename(name, format, time.Now())
			}

			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("creating %s: %w", outPath, err)
			}
			if err := svc.Export(cmd.Context(), result, format, f); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("closing %s: %w", outPath, err)
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d row(s) to %s\n", len(result.Rows), outPath)
			return nil
		},
	}
	cmd.Flags().String("format", "csv", "Export format: csv or xlsx")
	cmd.Flags().String("out", "", "Output path (defaults to a timestamped name in the working directory)")
	return cmd
}

// newService wires the same stack the server uses. Logs go to stderr so
// stdout stays machine-readable.
func newService() (service.ReportService, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	logger := logging.NewWithWriter(cfg.Log, os.Stderr)
	if cfg.Log.Level == "" || cfg.Log.Level == "info" {
		logger = logger.Level(zerolog.WarnLevel)
	}

	orch, err := interpret.NewFromConfig(&cfg.Generation, interpret.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	extractor, err := extract.New(&cfg.PDF, logger)
	if err != nil {
		return nil, err
	}
	return service.NewReportService(extractor, orch, nil, &cfg.Upload, logger), nil
}

func parseInput(ctx context.Context, svc service.ReportService, stdin io.Reader, args []string) (*domain.ParseResult, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		text, err := extract.DecodeText(data)
		if err != nil {
			return nil, err
		}
		return svc.ParseText(ctx, text)
	}

	f, err := os.Open(args[0])
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", args[0], err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", args[0], err)
	}
	return svc.ParseDocument(ctx, service.DocumentInput{
		Filename: filepath.Base(args[0]),
		Size:     info.Size(),
		Body:     f,
	})
}

func readRows(stdin io.Reader, args []string) ([]domain.ParsedRow, error) {
	r := stdin
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", args[0], err)
		}
		defer f.Close()
		r = f
	}

	var rows []domain.ParsedRow
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decoding rows: %w", err)
	}
	for i := range rows {
		if rows[i].TestName == "" || rows[i].Value.IsZero() {
			return nil, fmt.Errorf("%w: row %d needs test_name and value", domain.ErrInvalidInput, i)
		}
	}
	return rows, nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
