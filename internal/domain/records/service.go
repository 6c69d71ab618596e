package records

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"time"
)

var tableEntities = []Entity{EntityCompany, EntityPerson, EntityMember, EntityParcel, EntitySector}

var statEntities = []Entity{
	EntityCompany,
	EntityPerson,
	EntityMember,
	EntityParcel,
	EntitySector,
	EntityCategory,
	EntitySubcategory,
}

var dashboardEntities = []Entity{EntityCompany, EntityPerson, EntityParcel}

// SystemOperational is the only status the dashboard reports while the
// database answers.
const SystemOperational = "operational"

const loadDateColumn = "fecha_de_carga"

type Service struct {
	repo     Repository
	lookups  LookupCache
	cacheTTL time.Duration
	now      func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, lookups: noopLookupCache{}, now: time.Now}
}

// NewServiceWithLookupCache keeps lookup lists for ttl. Any successful write
// clears the cache.
func NewServiceWithLookupCache(repo Repository, cache LookupCache, ttl time.Duration) *Service {
	svc := NewService(repo)
	if cache != nil && ttl > 0 {
		svc.lookups = cache
		svc.cacheTTL = ttl
	}
	return svc
}

func (s *Service) List(ctx context.Context, entity Entity, params map[string]string, req PageRequest) (Page, error) {
	if !entity.Valid() {
		return Page{}, ErrEntityNotFound
	}
	req = req.Normalize()
	data, count := Compose(entity, BuildPredicate(entity, params), req)

	var (
		rows  []Record
		total int64
	)
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		var err error
		total, err = tx.Count(ctx, count)
		if err != nil {
			return fmt.Errorf("count %s: %w", entity, err)
		}
		rows, err = tx.Query(ctx, data)
		if err != nil {
			return fmt.Errorf("list %s: %w", entity, err)
		}
		return nil
	})
	if err != nil {
		return Page{}, err
	}

	return Project(entity, rows, total, req), nil
}

func (s *Service) Get(ctx context.Context, entity Entity, id int64) (Record, error) {
	if !entity.Valid() {
		return nil, ErrEntityNotFound
	}
	return getRecord(ctx, s.repo, entity, id)
}

func getRecord(ctx context.Context, repo Repository, entity Entity, id int64) (Record, error) {
	rows, err := repo.Query(ctx, ComposeByID(entity, id))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrRecordNotFound
	}
	return rows[0], nil
}

func (s *Service) Create(ctx context.Context, input CreateInput) (Record, error) {
	if !input.Entity.Valid() {
		return nil, ErrEntityNotFound
	}
	if !input.Entity.Writable() {
		return nil, ErrReadOnlyEntity
	}
	if len(input.ParcelIDs) > 0 && input.Entity != EntityMember {
		return nil, fmt.Errorf("%w: parcela_ids", ErrUnknownField)
	}

	columns, err := ValidateFields(input.Entity, input.Values, false)
	if err != nil {
		return nil, err
	}
	columns[loadDateColumn] = dateOf(s.now())

	var record Record
	err = s.repo.Transaction(ctx, func(tx Repository) error {
		if ManualID(input.Entity) {
			next, err := tx.NextID(ctx, input.Entity)
			if err != nil {
				return err
			}
			schema, _ := Describe(input.Entity)
			columns[schema.PrimaryKey] = next
		}

		id, err := tx.Insert(ctx, input.Entity, columns)
		if err != nil {
			return err
		}
		if len(input.ParcelIDs) > 0 {
			if err := tx.AssignParcels(ctx, id, input.ParcelIDs); err != nil {
				return err
			}
		}

		record, err = getRecord(ctx, tx, input.Entity, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.lookups.Clear()
	return record, nil
}

func (s *Service) Update(ctx context.Context, input UpdateInput) (Record, error) {
	if !input.Entity.Valid() {
		return nil, ErrEntityNotFound
	}
	if !input.Entity.Writable() {
		return nil, ErrReadOnlyEntity
	}
	if len(input.Values) == 0 {
		return nil, ErrEmptyUpdate
	}

	columns, err := ValidateFields(input.Entity, input.Values, true)
	if err != nil {
		return nil, err
	}

	var record Record
	err = s.repo.Transaction(ctx, func(tx Repository) error {
		updated, err := tx.Update(ctx, input.Entity, input.ID, columns)
		if err != nil {
			return err
		}
		if !updated {
			return ErrRecordNotFound
		}
		record, err = getRecord(ctx, tx, input.Entity, input.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.lookups.Clear()
	return record, nil
}

func (s *Service) Delete(ctx context.Context, entity Entity, id int64) error {
	if !entity.Valid() {
		return ErrEntityNotFound
	}
	if !entity.Writable() {
		return ErrReadOnlyEntity
	}

	err := s.repo.Transaction(ctx, func(tx Repository) error {
		exists, err := tx.Exists(ctx, entity, id)
		if err != nil {
			return err
		}
		if !exists {
			return ErrRecordNotFound
		}
		deleted, err := tx.Delete(ctx, entity, id)
		if err != nil {
			return err
		}
		if !deleted {
			return ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.lookups.Clear()
	return nil
}

func (s *Service) Lookup(ctx context.Context, lookup Lookup) ([]LookupItem, error) {
	stmt, err := LookupStatement(lookup)
	if err != nil {
		return nil, err
	}
	if items, ok := s.lookups.Get(lookup); ok {
		return items, nil
	}
	items, err := s.repo.Lookup(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("lookup %s: %w", lookup, err)
	}
	if items == nil {
		items = []LookupItem{}
	}
	s.lookups.Set(lookup, items, s.cacheTTL)
	return items, nil
}

func (s *Service) Tables(ctx context.Context) ([]TableInfo, error) {
	result := make([]TableInfo, 0, len(tableEntities))
	for _, entity := range tableEntities {
		info, err := s.Schema(ctx, entity)
		if err != nil {
			return nil, err
		}
		result = append(result, info)
	}
	return result, nil
}

// Schema describes a single table together with its current row count.
func (s *Service) Schema(ctx context.Context, entity Entity) (TableInfo, error) {
	schema, err := Describe(entity)
	if err != nil {
		return TableInfo{}, err
	}
	count, err := s.repo.Count(ctx, CountStatement(entity))
	if err != nil {
		return TableInfo{}, fmt.Errorf("count %s: %w", entity, err)
	}
	return TableInfo{
		Name:        entity.String(),
		Label:       schema.Label,
		Description: schema.Description,
		PrimaryKey:  schema.PrimaryKey,
		Columns:     schema.Columns,
		RecordCount: count,
	}, nil
}

func (s *Service) Stats(ctx context.Context) (Stats, error) {
	stats := Stats{
		TotalTables: len(statEntities),
		LastUpdate:  s.now().UTC(),
		TableStats:  make([]TableCount, 0, len(statEntities)),
	}

	for _, entity := range statEntities {
		count, err := s.repo.Count(ctx, CountStatement(entity))
		if err != nil {
			return Stats{}, fmt.Errorf("count %s: %w", entity, err)
		}
		stats.TableStats = append(stats.TableStats, TableCount{Table: entity.String(), Count: count})
		stats.TotalRecords += count
		if entity == EntityCompany || entity == EntityPerson {
			stats.ActiveRecords += count
		}
	}

	return stats, nil
}

func (s *Service) Dashboard(ctx context.Context) (Dashboard, error) {
	dashboard := Dashboard{
		LastUpdate:   s.now().UTC(),
		SystemStatus: SystemOperational,
	}
	for _, entity := range dashboardEntities {
		count, err := s.repo.Count(ctx, CountStatement(entity))
		if err != nil {
			return Dashboard{}, fmt.Errorf("count %s: %w", entity, err)
		}
		dashboard.TotalRecords += count
	}
	return dashboard, nil
}

// Export writes every row matching params as CSV. The header holds the
// column labels of the catalog.
func (s *Service) Export(ctx context.Context, entity Entity, params map[string]string, w io.Writer) error {
	schema, err := Describe(entity)
	if err != nil {
		return err
	}

	rows, err := s.repo.Query(ctx, ComposeAll(entity, BuildPredicate(entity, params)))
	if err != nil {
		return fmt.Errorf("export %s: %w", entity, err)
	}

	writer := csv.NewWriter(w)
	header := make([]string, 0, len(schema.Columns))
	for _, column := range schema.Columns {
		header = append(header, column.Label)
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	line := make([]string, len(schema.Columns))
	for _, row := range rows {
		for i, column := range schema.Columns {
			line[i] = formatCell(row[column.Name])
		}
		if err := writer.Write(line); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func formatCell(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case []byte:
		return string(v)
	case time.Time:
		if v.Hour() == 0 && v.Minute() == 0 && v.Second() == 0 && v.Nanosecond() == 0 {
			return v.Format("2006-01-02")
		}
		return v.Format(time.RFC3339)
	case bool:
		if v {
			return "Sí"
		}
		return "No"
	default:
		return fmt.Sprint(v)
	}
}

func dateOf(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
