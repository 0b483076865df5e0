package migration

import (
	"context"
	"database/sql"
	"fmt"

	"gorm.io/gorm"

	"github.com/bid-labs/ticketgen/internal/shared/logger"
)

// SequenceReport describes one table's id sequence before any adjustment.
type SequenceReport struct {
	Table     string
	Sequence  string
	MaxID     int64
	LastValue int64
	Lagging   bool
	Adjusted  bool
}

// SequenceFixer realigns postgres id sequences after rows were inserted with
// explicit ids, as catalog seeds and restores do.
type SequenceFixer struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewSequenceFixer(db *gorm.DB) *SequenceFixer {
	return &SequenceFixer{
		db:     db,
		logger: logger.NewLogger().With("component", "migration.sequences"),
	}
}

// Applicable reports whether the connected dialect uses sequences.
func (f *SequenceFixer) Applicable() bool {
	return f.db.Dialector.Name() == "postgres"
}

// Fix inspects every table and, unless dryRun is set, bumps lagging
// sequences to the current max id. Non-postgres dialects return no reports.
func (f *SequenceFixer) Fix(ctx context.Context, dryRun bool) ([]SequenceReport, error) {
	if !f.Applicable() {
		f.logger.Infow("sequence fix not applicable", "dialect", f.db.Dialector.Name())
		return nil, nil
	}

	tx := f.db.WithContext(ctx)
	reports := make([]SequenceReport, 0, len(Tables()))
	for _, table := range Tables() {
		report := SequenceReport{Table: table}

		var seq sql.NullString
		if err := tx.Raw("SELECT pg_get_serial_sequence(?, 'id')", table).Scan(&seq).Error; err != nil {
			return nil, fmt.Errorf("failed to resolve sequence for %s: %w", table, err)
		}
		if !seq.Valid || seq.String == "" {
			continue
		}
		report.Sequence = seq.String

		if err := tx.Raw(fmt.Sprintf("SELECT COALESCE(MAX(id), 0) FROM %s", table)).Scan(&report.MaxID).Error; err != nil {
			return nil, fmt.Errorf("failed to read max id for %s: %w", table, err)
		}

		var state struct {
			LastValue int64
			IsCalled  bool
		}
		if err := tx.Raw(fmt.Sprintf("SELECT last_value, is_called FROM %s", report.Sequence)).Scan(&state).Error; err != nil {
			return nil, fmt.Errorf("failed to read sequence %s: %w", report.Sequence, err)
		}
		report.LastValue = state.LastValue

		next := state.LastValue
		if state.IsCalled {
			next++
		}
		report.Lagging = report.MaxID > 0 && next <= report.MaxID

		if report.Lagging && !dryRun {
			if err := tx.Exec("SELECT setval(?, ?)", report.Sequence, report.MaxID).Error; err != nil {
				return nil, fmt.Errorf("failed to set sequence %s: %w", report.Sequence, err)
			}
			report.Adjusted = true
			f.logger.Infow("sequence adjusted",
				"table", table,
				"sequence", report.Sequence,
				"from", state.LastValue,
				"to", report.MaxID)
		}
		reports = append(reports, report)
	}
	return reports, nil
}
