package relations

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	relationsdomain "cepip-app-go/internal/domain/relations"
)

func setupMockDB(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db, DriverName: "postgres"}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewPostgres(gormDB), mock
}

func TestListPersonCompanies(t *testing.T) {
	repo, mock := setupMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT rep.ente_persona_id, rep.enteid, rep.cargoid, rep.areaid, e.razonsocial, c.cargo, a.area FROM relacion_ente_persona rep")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"ente_persona_id", "enteid", "cargoid", "areaid", "razonsocial", "cargo", "area"}).
			AddRow(4, 10, 3, nil, "Metalúrgica SA", "Gerente", nil))

	rows, err := repo.ListPersonCompanies(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(4), rows[0].ID)
	assert.Equal(t, "Metalúrgica SA", rows[0].Company)
	require.NotNil(t, rows[0].Role)
	assert.Equal(t, "Gerente", *rows[0].Role)
	assert.Nil(t, rows[0].DepartmentID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateLinkReturnsSerialKey(t *testing.T) {
	repo, mock := setupMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "relacion_ente_persona"`)).
		WillReturnRows(sqlmock.NewRows([]string{"ente_persona_id"}).AddRow(9))

	link := relationsdomain.Link{CompanyID: 10, PersonID: 1, LoadedAt: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, repo.CreateLink(context.Background(), &link))
	assert.Equal(t, int64(9), link.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteLinkScopedToPerson(t *testing.T) {
	repo, mock := setupMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "relacion_ente_persona" WHERE ente_persona_id = $1 AND personaid = $2`)).
		WithArgs(int64(4), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := repo.DeleteLink(context.Background(), 2, 4)
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignParcelInTransaction(t *testing.T) {
	repo, mock := setupMockDB(t)
	member := int64(5)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "parcela" WHERE parcelaid = $1`)).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "consorcista" WHERE consorcistaid = $1`)).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "parcela" SET "consorcistaid"=$1 WHERE parcelaid = $2`)).
		WithArgs(int64(5), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	svc := relationsdomain.NewService(repo)
	require.NoError(t, svc.AssignParcel(context.Background(), 7, &member))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListMemberParcelsOrderedByName(t *testing.T) {
	repo, mock := setupMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT parcelaid, parcela, calle, numero, superficie_has_, tieneplanta, alquilada, fraccion FROM "parcela" WHERE consorcistaid = $1 ORDER BY parcela`)).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"parcelaid", "parcela", "calle", "numero", "superficie_has_", "tieneplanta", "alquilada", "fraccion"}).
			AddRow(1, "A1", "Calle 1", 100, 2.5, true, false, nil))

	rows, err := repo.ListMemberParcels(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "A1", *rows[0].Parcel)
	assert.Equal(t, 2.5, *rows[0].Area)
	assert.Nil(t, rows[0].Fraction)
	assert.NoError(t, mock.ExpectationsWereMet())
}
