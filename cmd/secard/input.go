package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/alnah/go-secard"
	"github.com/alnah/go-secard/internal/config"
	"github.com/alnah/go-secard/internal/fileutil"
)

// readInput reads path, or stdin when path is empty or "-".
func readInput(env *Environment, path string) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(env.Stdin)
		if err != nil {
			return nil, fmt.Errorf("%w: stdin: %w", ErrReadInput, err)
		}
		return data, nil
	}

	data, err := os.ReadFile(path) // #nosec G304 -- input path is user-provided
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
	}
	return data, nil
}

// loadCards reads the raw card list and builds a renderer sized for it.
// Encounter totals are counted before parallel variants are appended, so
// the variants never inflate a set.
func loadCards(env *Environment, path string) ([]secard.Record, *secard.Renderer, func() error, error) {
	data, err := readInput(env, path)
	if err != nil {
		return nil, nil, nil, err
	}
	raw, err := secard.ParseRecords(data)
	if err != nil {
		return nil, nil, nil, err
	}

	r, closeFn, err := newRenderer(env, secard.CountEncounterCards(raw))
	if err != nil {
		return nil, nil, nil, err
	}

	cards, err := r.PrepareRecords(raw)
	if err != nil {
		_ = closeFn()
		return nil, nil, nil, err
	}
	env.Logger.Debug("cards loaded", zap.Int("input", len(raw)), zap.Int("prepared", len(cards)))
	return cards, r, closeFn, nil
}

// readMetadata loads a JSON object mapping card codes to location metadata.
func readMetadata(path string) (map[string]secard.Record, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path) // #nosec G304 -- metadata path is user-provided
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
	}

	var meta map[string]secard.Record
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("%w: metadata %s: %v", secard.ErrInvalidRecord, path, err)
	}
	return meta, nil
}

// sheetsFor maps a config sheet selection to the sheets to render.
func sheetsFor(selection string) []secard.Sheet {
	switch strings.ToLower(selection) {
	case config.SheetsFront:
		return []secard.Sheet{secard.Front}
	case config.SheetsBack:
		return []secard.Sheet{secard.Back}
	default:
		return []secard.Sheet{secard.Front, secard.Back}
	}
}

// buildJobs pairs every card with the selected sheets, its metadata and
// the configured portrait.
func buildJobs(cards []secard.Record, cfg *config.Config, meta map[string]secard.Record) []secard.Job {
	var portrait *secard.Portrait
	if cfg.Portrait != nil {
		portrait = &secard.Portrait{X: cfg.Portrait.X, Y: cfg.Portrait.Y, Scale: cfg.Portrait.Scale}
	}

	sheets := sheetsFor(cfg.Sheets)
	jobs := make([]secard.Job, 0, len(cards)*len(sheets))
	for _, card := range cards {
		for _, sheet := range sheets {
			jobs = append(jobs, secard.Job{
				Card:     card,
				Sheet:    sheet,
				Metadata: meta[card.Code()],
				Portrait: portrait,
			})
		}
	}
	return jobs
}

// writeOutput writes data to path, or stdout when path is empty or "-".
func writeOutput(env *Environment, path string, data []byte) error {
	if path == "" || path == "-" {
		if _, err := env.Stdout.Write(data); err != nil {
			return fmt.Errorf("%w: stdout: %w", ErrWriteOutput, err)
		}
		return nil
	}
	if err := fileutil.WriteFileAtomic(path, data, filePermissions); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	return nil
}
