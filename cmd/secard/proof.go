package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alnah/go-secard"
	"github.com/alnah/go-secard/internal/proof"
)

const defaultProofTitle = "Card proof"

type proofFlags struct {
	output   string
	title    string
	metadata string
}

func newProofCmd(env *Environment) *cobra.Command {
	var flags proofFlags

	cmd := &cobra.Command{
		Use:   "proof [cards.json]",
		Short: "Write an HTML proof sheet of the rendered fields",
		Long: `Proof renders the selected sheets of every card and writes a standalone
HTML page with one field table per sheet, followed by the source record.
Field values keep their Strange Eons tags so they can be checked as-is.`,
		Example: `  secard proof -o proof.html cards.json
  secard proof --lang zh_CN --title "Chinese proof" cards.json > proof.html`,
		Args: maxArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProof(cmd, env, firstArg(args), &flags)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.output, "output", "o", "", "output file (default stdout)")
	f.StringVar(&flags.title, "title", defaultProofTitle, "page title")
	f.StringVar(&flags.metadata, "metadata", "", "JSON object of location metadata keyed by card code")
	return cmd
}

func runProof(cmd *cobra.Command, env *Environment, path string, flags *proofFlags) error {
	builder, err := proof.NewBuilder()
	if err != nil {
		return err
	}

	meta, err := readMetadata(flags.metadata)
	if err != nil {
		return err
	}

	cards, r, closeFn, err := loadCards(env, path)
	if err != nil {
		return err
	}
	defer func() { _ = closeFn() }()

	jobs := buildJobs(cards, env.Config, meta)
	rendered, err := r.RenderAll(cmd.Context(), jobs)
	if err != nil {
		return err
	}

	// RenderAll keeps job order, so rendered[i] belongs to jobs[i].
	sheets := make([]proof.Card, len(rendered))
	for i, card := range rendered {
		sheets[i] = proof.Card{
			Title:  proofTitle(r, jobs[i].Card),
			Sheet:  int(card.Sheet()),
			Fields: card.Fields(),
			Raw:    jobs[i].Card.Raw(),
		}
	}

	page, err := builder.HTML(cmd.Context(), flags.title, sheets)
	if err != nil {
		return err
	}
	if err := writeOutput(env, flags.output, []byte(page)); err != nil {
		return err
	}

	env.Logger.Info("proof complete", zap.Int("sheets", len(sheets)))
	return nil
}

func proofTitle(r *secard.Renderer, card secard.Record) string {
	name := r.FrontName(card)
	if name == "" {
		return card.Code()
	}
	return card.Code() + " " + name
}
