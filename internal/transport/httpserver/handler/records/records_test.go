package records

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	recordsdomain "cepip-app-go/internal/domain/records"
	"cepip-app-go/pkg/logger"
)

type fakeService struct {
	listEntity recordsdomain.Entity
	listParams map[string]string
	listReq    recordsdomain.PageRequest
	page       recordsdomain.Page

	created recordsdomain.CreateInput
	updated recordsdomain.UpdateInput
	deleted int64

	items []recordsdomain.LookupItem
	csv   string
	err   error
}

func (f *fakeService) List(ctx context.Context, entity recordsdomain.Entity, params map[string]string, req recordsdomain.PageRequest) (recordsdomain.Page, error) {
	f.listEntity, f.listParams, f.listReq = entity, params, req
	return f.page, f.err
}

func (f *fakeService) Get(ctx context.Context, entity recordsdomain.Entity, id int64) (recordsdomain.Record, error) {
	if f.err != nil {
		return nil, f.err
	}
	return recordsdomain.Record{"id": id}, nil
}

func (f *fakeService) Create(ctx context.Context, input recordsdomain.CreateInput) (recordsdomain.Record, error) {
	f.created = input
	if f.err != nil {
		return nil, f.err
	}
	return recordsdomain.Record{"consorcistaid": 9}, nil
}

func (f *fakeService) Update(ctx context.Context, input recordsdomain.UpdateInput) (recordsdomain.Record, error) {
	f.updated = input
	if f.err != nil {
		return nil, f.err
	}
	return recordsdomain.Record{"enteid": input.ID}, nil
}

func (f *fakeService) Delete(ctx context.Context, entity recordsdomain.Entity, id int64) error {
	f.deleted = id
	return f.err
}

func (f *fakeService) Lookup(ctx context.Context, lookup recordsdomain.Lookup) ([]recordsdomain.LookupItem, error) {
	return f.items, f.err
}

func (f *fakeService) Tables(ctx context.Context) ([]recordsdomain.TableInfo, error) {
	return []recordsdomain.TableInfo{{Name: "ente", RecordCount: 4}}, f.err
}

func (f *fakeService) Schema(ctx context.Context, entity recordsdomain.Entity) (recordsdomain.TableInfo, error) {
	if f.err != nil {
		return recordsdomain.TableInfo{}, f.err
	}
	return recordsdomain.TableInfo{Name: entity.String(), PrimaryKey: "sectorid", RecordCount: 3}, nil
}

func (f *fakeService) Stats(ctx context.Context) (recordsdomain.Stats, error) {
	return recordsdomain.Stats{TotalRecords: 12, TotalTables: 7}, f.err
}

func (f *fakeService) Dashboard(ctx context.Context) (recordsdomain.Dashboard, error) {
	return recordsdomain.Dashboard{
		TotalRecords: 9,
		LastUpdate:   time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC),
		SystemStatus: recordsdomain.SystemOperational,
	}, f.err
}

func (f *fakeService) Export(ctx context.Context, entity recordsdomain.Entity, params map[string]string, w io.Writer) error {
	if f.err != nil {
		return f.err
	}
	_, err := io.WriteString(w, f.csv)
	return err
}

func newTestRouter(svc *fakeService) http.Handler {
	h := New(svc, logger.NewNop())
	r := chi.NewRouter()
	r.Get("/records/lookup/{lookup}", h.Lookup)
	r.Get("/records/{entity}", h.ListRecords)
	r.Post("/records/{entity}", h.CreateRecord)
	r.Get("/records/{entity}/export", h.ExportRecords)
	r.Get("/records/{entity}/{id}", h.GetRecord)
	r.Put("/records/{entity}/{id}", h.UpdateRecord)
	r.Delete("/records/{entity}/{id}", h.DeleteRecord)
	r.Get("/tables", h.ListTables)
	r.Get("/tables/{table}/schema", h.TableSchema)
	r.Get("/stats", h.Stats)
	r.Get("/stats/dashboard", h.Dashboard)
	return r
}

func serve(t *testing.T, handler http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(method, target, reader))
	return rec
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var body errorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestListRecordsPassesPageAndFilters(t *testing.T) {
	svc := &fakeService{page: recordsdomain.Page{
		Data:       []recordsdomain.Record{{"parcelaid": 1}},
		Columns:    []recordsdomain.Column{},
		Pagination: recordsdomain.Pagination{Page: 2, Limit: 5, Total: 6, Pages: 2},
	}}

	rec := serve(t, newTestRouter(svc), http.MethodGet, "/records/parcela?page=2&limit=5&search=sur&tieneplanta=true", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, recordsdomain.EntityParcel, svc.listEntity)
	assert.Equal(t, recordsdomain.PageRequest{Page: 2, Limit: 5}, svc.listReq)
	assert.Equal(t, map[string]string{"search": "sur", "tieneplanta": "true"}, svc.listParams)

	var body struct {
		Data       []map[string]interface{} `json:"data"`
		Pagination recordsdomain.Pagination `json:"pagination"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Len(t, body.Data, 1)
	assert.Equal(t, int64(2), body.Pagination.Pages)
}

func TestListRecordsDefaultsPagination(t *testing.T) {
	svc := &fakeService{}

	rec := serve(t, newTestRouter(svc), http.MethodGet, "/records/ente", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, recordsdomain.PageRequest{Page: 1, Limit: 20}, svc.listReq)
}

func TestListRecordsRejectsBadPagination(t *testing.T) {
	for _, query := range []string{"limit=101", "limit=0", "page=0", "page=abc"} {
		t.Run(query, func(t *testing.T) {
			rec := serve(t, newTestRouter(&fakeService{}), http.MethodGet, "/records/ente?"+query, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestUnknownEntityIsNotFound(t *testing.T) {
	svc := &fakeService{}

	rec := serve(t, newTestRouter(svc), http.MethodGet, "/records/usuarios", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "entity_not_found", decodeError(t, rec).Error.Code)
	assert.Equal(t, recordsdomain.Entity(0), svc.listEntity)
}

func TestCreateRecordSplitsParcelIDs(t *testing.T) {
	svc := &fakeService{}

	rec := serve(t, newTestRouter(svc), http.MethodPost, "/records/consorcista",
		`{"nombre": "Consorcio A", "nro_consorcista": 7, "parcela_ids": [1, 2]}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, recordsdomain.EntityMember, svc.created.Entity)
	assert.Equal(t, []int64{1, 2}, svc.created.ParcelIDs)
	assert.NotContains(t, svc.created.Values, "parcela_ids")
	assert.Equal(t, json.Number("7"), svc.created.Values["nro_consorcista"])
}

func TestCreateRecordRejectsBadParcelIDs(t *testing.T) {
	rec := serve(t, newTestRouter(&fakeService{}), http.MethodPost, "/records/consorcista",
		`{"nombre": "Consorcio A", "parcela_ids": "1,2"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateRecordRejectsNonObjectBody(t *testing.T) {
	for _, body := range []string{`[1]`, `null`, `{`} {
		rec := serve(t, newTestRouter(&fakeService{}), http.MethodPost, "/records/ente", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}

func TestServiceErrorsMapToStatus(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{fmt.Errorf("%w: razonsocial", recordsdomain.ErrMissingField), http.StatusBadRequest, "invalid_request"},
		{recordsdomain.ErrEmptyUpdate, http.StatusBadRequest, "invalid_request"},
		{recordsdomain.ErrReadOnlyEntity, http.StatusBadRequest, "read_only_entity"},
		{recordsdomain.ErrRecordNotFound, http.StatusNotFound, "record_not_found"},
		{errors.New("connection reset"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			rec := serve(t, newTestRouter(&fakeService{err: tc.err}), http.MethodPut, "/records/ente/3", `{"web": "x"}`)
			assert.Equal(t, tc.status, rec.Code)
			body := decodeError(t, rec)
			assert.Equal(t, tc.code, body.Error.Code)
			assert.Contains(t, body.Error.Message, tc.err.Error())
		})
	}
}

func TestUpdateRecordPassesID(t *testing.T) {
	svc := &fakeService{}

	rec := serve(t, newTestRouter(svc), http.MethodPut, "/records/ente/12", `{"web": "https://example.com"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(12), svc.updated.ID)
	assert.Equal(t, "https://example.com", svc.updated.Values["web"])
}

func TestGetRecordRejectsBadID(t *testing.T) {
	rec := serve(t, newTestRouter(&fakeService{}), http.MethodGet, "/records/ente/-1", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteMissingRecordIsNotFound(t *testing.T) {
	svc := &fakeService{err: recordsdomain.ErrRecordNotFound}

	rec := serve(t, newTestRouter(svc), http.MethodDelete, "/records/persona/99", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, int64(99), svc.deleted)
}

func TestDeleteRecordConfirms(t *testing.T) {
	rec := serve(t, newTestRouter(&fakeService{}), http.MethodDelete, "/records/persona/5", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var body deleteResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, int64(5), body.ID)
}

func TestExportRecordsWritesCSV(t *testing.T) {
	svc := &fakeService{csv: "ID,Parcela\n1,A-1\n"}

	rec := serve(t, newTestRouter(svc), http.MethodGet, "/records/parcela/export", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="parcela.csv"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "ID,Parcela\n1,A-1\n", rec.Body.String())
}

func TestExportFailureIsJSON(t *testing.T) {
	rec := serve(t, newTestRouter(&fakeService{err: errors.New("boom")}), http.MethodGet, "/records/parcela/export", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal_error", decodeError(t, rec).Error.Code)
}

func TestLookup(t *testing.T) {
	svc := &fakeService{items: []recordsdomain.LookupItem{{ID: 1, Name: "Gerente"}}}

	rec := serve(t, newTestRouter(svc), http.MethodGet, "/records/lookup/cargos", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string][]recordsdomain.LookupItem
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, map[string][]recordsdomain.LookupItem{"cargos": svc.items}, body)

	rec = serve(t, newTestRouter(svc), http.MethodGet, "/records/lookup/planetas", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "lookup_not_found", decodeError(t, rec).Error.Code)
}

func TestLookupWrapsItemsUnderKey(t *testing.T) {
	svc := &fakeService{items: []recordsdomain.LookupItem{{ID: 1, Name: "ACME"}}}

	rec := serve(t, newTestRouter(svc), http.MethodGet, "/records/lookup/empresas", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"empresas":[{"id":1,"name":"ACME"}]}`, rec.Body.String())

	rec = serve(t, newTestRouter(svc), http.MethodGet, "/records/lookup/tipos-consorcista", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"tipos":[{"id":1,"name":"ACME"}]}`, rec.Body.String())
}

func TestTablesAndStats(t *testing.T) {
	router := newTestRouter(&fakeService{})

	rec := serve(t, router, http.MethodGet, "/tables", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var tables tablesResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&tables))
	assert.Equal(t, int64(4), tables.Tables[0].RecordCount)

	rec = serve(t, router, http.MethodGet, "/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var stats recordsdomain.Stats
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&stats))
	assert.Equal(t, int64(12), stats.TotalRecords)
	assert.Contains(t, rec.Body.String(), `"inactiveRecords":0`)
}

func TestTableSchema(t *testing.T) {
	rec := serve(t, newTestRouter(&fakeService{}), http.MethodGet, "/tables/sector/schema", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var info recordsdomain.TableInfo
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&info))
	assert.Equal(t, "sector", info.Name)
	assert.Equal(t, int64(3), info.RecordCount)

	rec = serve(t, newTestRouter(&fakeService{}), http.MethodGet, "/tables/planetas/schema", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "entity_not_found", decodeError(t, rec).Error.Code)

	rec = serve(t, newTestRouter(&fakeService{err: recordsdomain.ErrEntityNotFound}), http.MethodGet, "/tables/sector/schema", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDashboard(t *testing.T) {
	rec := serve(t, newTestRouter(&fakeService{}), http.MethodGet, "/stats/dashboard", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"totalRecords":9,"lastUpdate":"2024-03-05T14:30:00Z","systemStatus":"operational"}`,
		rec.Body.String(),
	)

	rec = serve(t, newTestRouter(&fakeService{err: errors.New("db down")}), http.MethodGet, "/stats/dashboard", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal_error", decodeError(t, rec).Error.Code)
}
