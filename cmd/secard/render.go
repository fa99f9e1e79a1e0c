package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alnah/go-secard"
	"github.com/alnah/go-secard/internal/config"
)

// renderedSheet is the output record for one rendered sheet.
type renderedSheet struct {
	Code   string            `json:"code"`
	Sheet  int               `json:"sheet"`
	Fields map[string]string `json:"fields"`
}

type renderFlags struct {
	sheets   string
	format   string
	output   string
	metadata string
}

func newRenderCmd(env *Environment) *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "render [cards.json]",
		Short: "Render Strange Eons fields for every card",
		Long: `Render reads a JSON array of ArkhamDB card records and writes the Strange
Eons fields of each selected sheet, in input order. Parallel investigator
variants are appended after the input cards.

Output is one JSON object per sheet: {"code", "sheet", "fields"}.`,
		Example: `  secard render cards.json
  secard render --sheets front --format json -o fields.json cards.json
  cat cards.json | secard render --lang de`,
		Args: maxArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("sheets") {
				env.Config.Sheets = flags.sheets
			}
			if cmd.Flags().Changed("format") {
				env.Config.Output.Format = flags.format
			}
			if err := env.Config.Validate(); err != nil {
				return err
			}
			return runRender(cmd, env, firstArg(args), &flags)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.sheets, "sheets", config.SheetsBoth, "sheets to render: both, front, or back")
	f.StringVar(&flags.format, "format", config.FormatJSONLines, "output format: jsonl or json")
	f.StringVarP(&flags.output, "output", "o", "", "output file (default stdout)")
	f.StringVar(&flags.metadata, "metadata", "", "JSON object of location metadata keyed by card code")
	return cmd
}

func runRender(cmd *cobra.Command, env *Environment, path string, flags *renderFlags) error {
	meta, err := readMetadata(flags.metadata)
	if err != nil {
		return err
	}

	cards, r, closeFn, err := loadCards(env, path)
	if err != nil {
		return err
	}
	defer func() { _ = closeFn() }()

	rendered, err := r.RenderAll(cmd.Context(), buildJobs(cards, env.Config, meta))
	if err != nil {
		return err
	}

	data, err := encodeSheets(rendered, env.Config.Output.Format)
	if err != nil {
		return err
	}
	if err := writeOutput(env, flags.output, data); err != nil {
		return err
	}

	env.Logger.Info("render complete",
		zap.Int("cards", len(cards)),
		zap.Int("sheets", len(rendered)),
	)
	return nil
}

// encodeSheets serializes rendered sheets without HTML escaping, so the
// Strange Eons tags stay readable.
func encodeSheets(rendered []secard.RenderedCard, format string) ([]byte, error) {
	sheets := make([]renderedSheet, len(rendered))
	for i, card := range rendered {
		sheets[i] = renderedSheet{Code: card.Code(), Sheet: int(card.Sheet()), Fields: card.Fields()}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if strings.EqualFold(format, config.FormatJSON) {
		enc.SetIndent("", "  ")
		if err := enc.Encode(sheets); err != nil {
			return nil, fmt.Errorf("encoding output: %w", err)
		}
		return buf.Bytes(), nil
	}

	for _, s := range sheets {
		if err := enc.Encode(s); err != nil {
			return nil, fmt.Errorf("encoding output: %w", err)
		}
	}
	return buf.Bytes(), nil
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
