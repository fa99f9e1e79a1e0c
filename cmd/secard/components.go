package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alnah/go-secard"
)

// componentEntry places one sheet in a Strange Eons project.
type componentEntry struct {
	Code        string `json:"code"`
	Sheet       int    `json:"sheet"`
	Component   string `json:"component"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func newComponentsCmd(env *Environment) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "components [cards.json]",
		Short: "List the Strange Eons component and tooltip of every sheet",
		Long: `Components classifies the selected sheets of every card into their Strange
Eons component type and prints the tabletop tooltip (name and description).
Cards of an unsupported type are skipped with a warning.`,
		Args: maxArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runComponents(env, firstArg(args), output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}

func runComponents(env *Environment, path, output string) error {
	cards, r, closeFn, err := loadCards(env, path)
	if err != nil {
		return err
	}
	defer func() { _ = closeFn() }()

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	skipped := 0
	for _, job := range buildJobs(cards, env.Config, nil) {
		component, err := r.ComponentType(job.Card, job.Sheet)
		if errors.Is(err, secard.ErrUnsupportedType) {
			env.Logger.Warn("skipping card", zap.String("code", job.Card.Code()), zap.Error(err))
			skipped++
			continue
		}
		if err != nil {
			return err
		}

		tip := r.Tooltip(job.Card)
		entry := componentEntry{
			Code:        job.Card.Code(),
			Sheet:       int(job.Sheet),
			Component:   string(component),
			Name:        tip.Name,
			Description: tip.Description,
		}
		if err := enc.Encode(entry); err != nil {
			return fmt.Errorf("encoding output: %w", err)
		}
	}

	if err := writeOutput(env, output, buf.Bytes()); err != nil {
		return err
	}
	env.Logger.Debug("components listed", zap.Int("skipped", skipped))
	return nil
}
