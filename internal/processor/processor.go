package processor

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"codeberg.org/snonux/sheettranslate/internal/batch"
	"codeberg.org/snonux/sheettranslate/internal/config"
	"codeberg.org/snonux/sheettranslate/internal/pacing"
	"codeberg.org/snonux/sheettranslate/internal/sheet"
)

// BatchTranslator translates one batch of cells, returning exactly one
// translation per item
type BatchTranslator interface {
	TranslateBatch(ctx context.Context, items []string) ([]string, error)
}

// Progress receives the number of rows finished after every batch
type Progress interface {
	Add(num int) error
}

// SaveFunc persists the complete output table
type SaveFunc func(t *sheet.Table) error

// Options carries the processor's collaborators
type Options struct {
	Translator BatchTranslator
	Pacer      pacing.Pacer
	Progress   Progress
	Save       SaveFunc
	Logger     zerolog.Logger
}

// Processor runs the batch translation loop
type Processor struct {
	settings   *config.Settings
	translator BatchTranslator
	pacer      pacing.Pacer
	progress   Progress
	save       SaveFunc
	log        zerolog.Logger
}

// Summary describes a finished run
type Summary struct {
	Rows       int
	Batches    int
	Requests   int
	Translated int
	Empty      int
}

// NewProcessor creates a processor for settings
func NewProcessor(settings *config.Settings, opts Options) *Processor {
	p := &Processor{
		settings:   settings,
		translator: opts.Translator,
		pacer:      opts.Pacer,
		progress:   opts.Progress,
		save:       opts.Save,
		log:        opts.Logger,
	}
	if p.pacer == nil {
		p.pacer = pacing.Fixed{}
	}
	if p.progress == nil {
		p.progress = noProgress{}
	}
	return p
}

// column is one translation pair resolved against the table
type column struct {
	pair    config.Pair
	sources []string
	saveIdx int
}

// Run translates table in place. The output columns are added before the
// first batch and the whole table is saved after each batch; an empty
// table is saved once so the output file always exists after a clean run.
func (p *Processor) Run(ctx context.Context, table *sheet.Table) (*Summary, error) {
	if p.translator == nil || p.save == nil {
		return nil, fmt.Errorf("processor is missing a translator or save function")
	}

	columns, err := p.resolveColumns(table)
	if err != nil {
		return nil, err
	}

	ranges := batch.Split(table.Len(), p.settings.RowsPerBatch)
	summary := &Summary{Rows: table.Len()}

	if len(ranges) == 0 {
		p.log.Warn().Msg("Source sheet has no data rows, writing output without translations")
		if err := p.save(table); err != nil {
			return summary, fmt.Errorf("failed to save output: %w", err)
		}
		return summary, nil
	}

	for i, r := range ranges {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		p.log.Debug().
			Int("batch", i+1).
			Int("of", len(ranges)).
			Stringer("rows", r).
			Msg("Translating batch")

		for _, col := range columns {
			items := batch.Slice(col.sources, r)

			translations, err := p.translator.TranslateBatch(ctx, items)
			summary.Requests++
			if err != nil {
				return summary, fmt.Errorf("batch %d/%d rows %s: failed to translate column %q: %w",
					i+1, len(ranges), r, col.pair.Source, err)
			}

			for j := 0; j < r.Len(); j++ {
				var value string
				if j < len(translations) {
					value = translations[j]
				}
				if value == "" {
					summary.Empty++
				} else {
					summary.Translated++
				}
				table.Set(r.Start+j, col.saveIdx, value)
			}
		}

		if err := p.save(table); err != nil {
			return summary, fmt.Errorf("batch %d/%d rows %s: failed to save output: %w", i+1, len(ranges), r, err)
		}
		summary.Batches++

		if err := p.progress.Add(r.Len()); err != nil {
			p.log.Warn().Err(err).Msg("Failed to update progress")
		}

		if err := p.pacer.Wait(ctx); err != nil {
			return summary, fmt.Errorf("batch %d/%d: pause interrupted: %w", i+1, len(ranges), err)
		}
	}

	return summary, nil
}

func (p *Processor) resolveColumns(table *sheet.Table) ([]column, error) {
	pairs := p.settings.Pairs()
	columns := make([]column, 0, len(pairs))

	for _, pair := range pairs {
		sources, err := table.Column(pair.Source)
		if err != nil {
			return nil, fmt.Errorf("source column: %w", err)
		}
		columns = append(columns, column{pair: pair, sources: sources})
	}

	// output columns are added after all sources are known to exist
	for i := range columns {
		columns[i].saveIdx = table.EnsureColumn(columns[i].pair.Save)
	}

	return columns, nil
}

type noProgress struct{}

func (noProgress) Add(int) error { return nil }
