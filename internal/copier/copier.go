package copier

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"cepip-app-go/pkg/logger"
	"github.com/google/uuid"
)

var ErrUnknownTable = errors.New("table not found in source")

// Source is the database rows are read from.
type Source interface {
	Tables(ctx context.Context) ([]string, error)
	// Dependencies maps each table to the tables its foreign keys reference.
	Dependencies(ctx context.Context) (map[string][]string, error)
	Scan(ctx context.Context, table string, fn func(columns []string, values []any) error) error
	Count(ctx context.Context, table string) (int64, error)
}

// Target is the database rows are written to. Insert reports false when the
// row already existed.
type Target interface {
	Insert(ctx context.Context, table string, columns []string, values []any) (bool, error)
	Count(ctx context.Context, table string) (int64, error)
	// SyncSequences moves the table's generated-key sequences past the
	// highest key present so later inserts do not reuse copied ids.
	SyncSequences(ctx context.Context, table string) error
}

type Copier struct {
	source   Source
	target   Target
	excluded map[string]struct{}
	log      logger.Logger
	newID    func() uuid.UUID
}

func New(source Source, target Target, excluded []string, log logger.Logger) *Copier {
	skip := make(map[string]struct{}, len(excluded))
	for _, table := range excluded {
		skip[table] = struct{}{}
	}
	return &Copier{
		source:   source,
		target:   target,
		excluded: skip,
		log:      log,
		newID:    uuid.New,
	}
}

// Copy copies every row of the selected tables and reconciles counts
// afterwards. Tables are copied parents first. A failing row is logged and
// counted without stopping the table.
func (c *Copier) Copy(ctx context.Context, tables []string) (Report, error) {
	selected, err := c.resolve(ctx, tables)
	if err != nil {
		return Report{}, err
	}
	ordered, err := c.order(ctx, selected)
	if err != nil {
		return Report{}, err
	}

	report := Report{RunID: c.newID()}
	log := c.log.With("run_id", report.RunID.String())
	log.Info("copy: starting", "tables", len(ordered))

	for _, table := range ordered {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		entry := c.copyTable(ctx, log, table)
		report.Tables = append(report.Tables, entry)
	}

	log.Info("copy: finished", "ok", report.OK())
	return report, nil
}

// Verify only reconciles counts.
func (c *Copier) Verify(ctx context.Context, tables []string) (Report, error) {
	selected, err := c.resolve(ctx, tables)
	if err != nil {
		return Report{}, err
	}
	sort.Strings(selected)

	report := Report{RunID: c.newID()}
	for _, table := range selected {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.Tables = append(report.Tables, c.compare(ctx, table))
	}
	return report, nil
}

func (c *Copier) copyTable(ctx context.Context, log logger.Logger, table string) TableReport {
	var copied, skipped, failed int64
	scanErr := c.source.Scan(ctx, table, func(columns []string, values []any) error {
		inserted, err := c.target.Insert(ctx, table, columns, values)
		switch {
		case err != nil:
			failed++
			log.BusinessError("copy: row failed", err, "table", table)
		case inserted:
			copied++
		default:
			skipped++
		}
		return ctx.Err()
	})

	entry := c.compare(ctx, table)
	entry.Copied = copied
	entry.Skipped = skipped
	entry.Failed = failed
	if scanErr != nil {
		log.InternalError("copy: read failed", scanErr, "table", table)
		entry.fail(fmt.Sprintf("read source: %v", scanErr))
	}
	if entry.Status != StatusMissing {
		if err := c.target.SyncSequences(ctx, table); err != nil {
			log.InternalError("copy: sequence sync failed", err, "table", table)
			entry.fail(fmt.Sprintf("sync sequences: %v", err))
		}
	}

	log.Info("copy: table done", "table", table, "copied", copied, "skipped", skipped, "failed", failed, "status", entry.Status)
	return entry
}

func (c *Copier) compare(ctx context.Context, table string) TableReport {
	source, err := c.source.Count(ctx, table)
	if err != nil {
		return TableReport{Table: table, Status: StatusMissing, Error: fmt.Sprintf("count source: %v", err)}
	}
	target, targetErr := c.target.Count(ctx, table)
	return reconcile(table, source, target, targetErr)
}

// resolve lists source tables and applies the explicit selection and the
// exclusion list.
func (c *Copier) resolve(ctx context.Context, tables []string) ([]string, error) {
	available, err := c.source.Tables(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}

	if len(tables) == 0 {
		var selected []string
		for _, table := range available {
			if _, skip := c.excluded[table]; !skip {
				selected = append(selected, table)
			}
		}
		return selected, nil
	}

	known := make(map[string]struct{}, len(available))
	for _, table := range available {
		known[table] = struct{}{}
	}
	selected := make([]string, 0, len(tables))
	seen := make(map[string]struct{}, len(tables))
	for _, table := range tables {
		if _, ok := known[table]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownTable, table)
		}
		if _, dup := seen[table]; dup {
			continue
		}
		seen[table] = struct{}{}
		selected = append(selected, table)
	}
	return selected, nil
}

func (c *Copier) order(ctx context.Context, tables []string) ([]string, error) {
	deps, err := c.source.Dependencies(ctx)
	if err != nil {
		return nil, fmt.Errorf("list dependencies: %w", err)
	}
	return parentsFirst(tables, deps), nil
}

// parentsFirst sorts tables so referenced tables precede the tables that
// reference them. Ties and cycles fall back to name order.
func parentsFirst(tables []string, deps map[string][]string) []string {
	pending := append([]string(nil), tables...)
	sort.Strings(pending)

	included := make(map[string]struct{}, len(pending))
	for _, table := range pending {
		included[table] = struct{}{}
	}

	done := make(map[string]struct{}, len(pending))
	ordered := make([]string, 0, len(pending))
	for len(pending) > 0 {
		var next []string
		progressed := false
		for _, table := range pending {
			if ready(table, deps[table], included, done) {
				ordered = append(ordered, table)
				done[table] = struct{}{}
				progressed = true
				continue
			}
			next = append(next, table)
		}
		if !progressed {
			ordered = append(ordered, next...)
			break
		}
		pending = next
	}
	return ordered
}

func ready(table string, parents []string, included, done map[string]struct{}) bool {
	for _, parent := range parents {
		if parent == table {
			continue
		}
		if _, ok := included[parent]; !ok {
			continue
		}
		if _, ok := done[parent]; !ok {
			return false
		}
	}
	return true
}
