package relations

import (
	"context"

	relationsdomain "cepip-app-go/internal/domain/relations"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(relationsdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) exists(ctx context.Context, table, key string, id int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Table(table).Where(key+" = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresRepository) PersonExists(ctx context.Context, personID int64) (bool, error) {
	return r.exists(ctx, "persona", "personaid", personID)
}

func (r *PostgresRepository) CompanyExists(ctx context.Context, companyID int64) (bool, error) {
	return r.exists(ctx, "ente", "enteid", companyID)
}

func (r *PostgresRepository) MemberExists(ctx context.Context, memberID int64) (bool, error) {
	return r.exists(ctx, "consorcista", "consorcistaid", memberID)
}

func (r *PostgresRepository) ParcelExists(ctx context.Context, parcelID int64) (bool, error) {
	return r.exists(ctx, "parcela", "parcelaid", parcelID)
}

func (r *PostgresRepository) ListPersonCompanies(ctx context.Context, personID int64) ([]relationsdomain.PersonCompany, error) {
	query := "SELECT rep.ente_persona_id, rep.enteid, rep.cargoid, rep.areaid, e.razonsocial, c.cargo, a.area " +
		"FROM relacion_ente_persona rep " +
		"JOIN ente e ON rep.enteid = e.enteid " +
		"LEFT JOIN cargo c ON rep.cargoid = c.cargoid " +
		"LEFT JOIN area a ON rep.areaid = a.areaid " +
		"WHERE rep.personaid = ? " +
		"ORDER BY e.razonsocial"

	var rows []relationsdomain.PersonCompany
	if err := r.db.WithContext(ctx).Raw(query, personID).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *PostgresRepository) CreateLink(ctx context.Context, link *relationsdomain.Link) error {
	return r.db.WithContext(ctx).Create(link).Error
}

func (r *PostgresRepository) DeleteLink(ctx context.Context, personID, linkID int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("ente_persona_id = ? AND personaid = ?", linkID, personID).
		Delete(&relationsdomain.Link{})
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) SetParcelMember(ctx context.Context, parcelID int64, memberID *int64) error {
	return r.db.WithContext(ctx).
		Table("parcela").
		Where("parcelaid = ?", parcelID).
		Update("consorcistaid", memberID).Error
}

func (r *PostgresRepository) ListMemberParcels(ctx context.Context, memberID int64) ([]relationsdomain.MemberParcel, error) {
	var rows []relationsdomain.MemberParcel
	if err := r.db.WithContext(ctx).
		Table("parcela").
		Select("parcelaid, parcela, calle, numero, superficie_has_, tieneplanta, alquilada, fraccion").
		Where("consorcistaid = ?", memberID).
		Order("parcela").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
