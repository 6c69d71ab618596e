package records

import (
	"context"
	"sort"
	"strings"

	recordsdomain "cepip-app-go/internal/domain/records"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(recordsdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

// raw binds named parameters only when there are any; gorm appends unused
// positional values otherwise.
func (r *PostgresRepository) raw(ctx context.Context, stmt recordsdomain.Statement) *gorm.DB {
	if len(stmt.Params) == 0 {
		return r.db.WithContext(ctx).Raw(stmt.SQL)
	}
	return r.db.WithContext(ctx).Raw(stmt.SQL, stmt.Params)
}

func (r *PostgresRepository) Query(ctx context.Context, stmt recordsdomain.Statement) ([]recordsdomain.Record, error) {
	rows, err := r.raw(ctx, stmt).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	result := make([]recordsdomain.Record, 0)
	for rows.Next() {
		values := make([]interface{}, len(columns))
		pointers := make([]interface{}, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, err
		}

		record := make(recordsdomain.Record, len(columns))
		for i, column := range columns {
			if b, ok := values[i].([]byte); ok {
				record[column] = string(b)
				continue
			}
			record[column] = values[i]
		}
		result = append(result, record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Count(ctx context.Context, stmt recordsdomain.Statement) (int64, error) {
	var total int64
	if err := r.raw(ctx, stmt).Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *PostgresRepository) Lookup(ctx context.Context, stmt recordsdomain.Statement) ([]recordsdomain.LookupItem, error) {
	var rows []struct {
		ID   int64  `gorm:"column:id"`
		Name string `gorm:"column:name"`
	}
	if err := r.raw(ctx, stmt).Scan(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]recordsdomain.LookupItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, recordsdomain.LookupItem{ID: row.ID, Name: row.Name})
	}
	return items, nil
}

func (r *PostgresRepository) NextID(ctx context.Context, entity recordsdomain.Entity) (int64, error) {
	schema, err := recordsdomain.Describe(entity)
	if err != nil {
		return 0, err
	}

	var next int64
	query := "SELECT COALESCE(MAX(" + schema.PrimaryKey + "), 0) + 1 FROM " + entity.Table()
	if err := r.db.WithContext(ctx).Raw(query).Scan(&next).Error; err != nil {
		return 0, err
	}
	return next, nil
}

func (r *PostgresRepository) Insert(ctx context.Context, entity recordsdomain.Entity, columns map[string]interface{}) (int64, error) {
	schema, err := recordsdomain.Describe(entity)
	if err != nil {
		return 0, err
	}

	names := sortedKeys(columns)
	placeholders := make([]string, 0, len(names))
	params := make(map[string]interface{}, len(names))
	for _, name := range names {
		placeholders = append(placeholders, "@v_"+name)
		params["v_"+name] = columns[name]
	}

	query := "INSERT INTO " + entity.Table() + " (" + strings.Join(names, ", ") + ") VALUES (" +
		strings.Join(placeholders, ", ") + ") RETURNING " + schema.PrimaryKey

	var id int64
	if err := r.db.WithContext(ctx).Raw(query, params).Scan(&id).Error; err != nil {
		return 0, err
	}
	return id, nil
}

func (r *PostgresRepository) Update(ctx context.Context, entity recordsdomain.Entity, id int64, columns map[string]interface{}) (bool, error) {
	schema, err := recordsdomain.Describe(entity)
	if err != nil {
		return false, err
	}

	names := sortedKeys(columns)
	assignments := make([]string, 0, len(names))
	params := map[string]interface{}{"id": id}
	for _, name := range names {
		assignments = append(assignments, name+" = @v_"+name)
		params["v_"+name] = columns[name]
	}

	query := "UPDATE " + entity.Table() + " SET " + strings.Join(assignments, ", ") +
		" WHERE " + schema.PrimaryKey + " = @id"
	result := r.db.WithContext(ctx).Exec(query, params)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) Exists(ctx context.Context, entity recordsdomain.Entity, id int64) (bool, error) {
	schema, err := recordsdomain.Describe(entity)
	if err != nil {
		return false, err
	}

	var count int64
	query := "SELECT COUNT(*) FROM " + entity.Table() + " WHERE " + schema.PrimaryKey + " = @id"
	if err := r.db.WithContext(ctx).Raw(query, map[string]interface{}{"id": id}).Scan(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, entity recordsdomain.Entity, id int64) (bool, error) {
	schema, err := recordsdomain.Describe(entity)
	if err != nil {
		return false, err
	}

	query := "DELETE FROM " + entity.Table() + " WHERE " + schema.PrimaryKey + " = @id"
	result := r.db.WithContext(ctx).Exec(query, map[string]interface{}{"id": id})
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) AssignParcels(ctx context.Context, memberID int64, parcelIDs []int64) error {
	if len(parcelIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Exec("UPDATE parcela SET consorcistaid = @member WHERE parcelaid IN @ids", map[string]interface{}{
			"member": memberID,
			"ids":    parcelIDs,
		}).Error
}

func sortedKeys(values map[string]interface{}) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
