package records

import (
	"context"
	"io"

	recordsdomain "cepip-app-go/internal/domain/records"
	"cepip-app-go/pkg/logger"
)

type Service interface {
	List(ctx context.Context, entity recordsdomain.Entity, params map[string]string, req recordsdomain.PageRequest) (recordsdomain.Page, error)
	Get(ctx context.Context, entity recordsdomain.Entity, id int64) (recordsdomain.Record, error)
	Create(ctx context.Context, input recordsdomain.CreateInput) (recordsdomain.Record, error)
	Update(ctx context.Context, input recordsdomain.UpdateInput) (recordsdomain.Record, error)
	Delete(ctx context.Context, entity recordsdomain.Entity, id int64) error
	Lookup(ctx context.Context, lookup recordsdomain.Lookup) ([]recordsdomain.LookupItem, error)
	Tables(ctx context.Context) ([]recordsdomain.TableInfo, error)
	Schema(ctx context.Context, entity recordsdomain.Entity) (recordsdomain.TableInfo, error)
	Stats(ctx context.Context) (recordsdomain.Stats, error)
	Dashboard(ctx context.Context) (recordsdomain.Dashboard, error)
	Export(ctx context.Context, entity recordsdomain.Entity, params map[string]string, w io.Writer) error
}

type Handlers struct {
	Records Service
	log     logger.Logger
}

func New(records Service, log logger.Logger) *Handlers {
	return &Handlers{
		Records: records,
		log:     log,
	}
}
