package relations

import (
	"context"

	relationsdomain "cepip-app-go/internal/domain/relations"
	"cepip-app-go/pkg/logger"
)

type Service interface {
	ListPersonCompanies(ctx context.Context, personID int64) ([]relationsdomain.PersonCompany, error)
	LinkPersonCompany(ctx context.Context, input relationsdomain.LinkInput) (*relationsdomain.Link, error)
	UnlinkPersonCompany(ctx context.Context, personID, linkID int64) error
	AssignParcel(ctx context.Context, parcelID int64, memberID *int64) error
	ListMemberParcels(ctx context.Context, memberID int64) ([]relationsdomain.MemberParcel, error)
}

type Handlers struct {
	Relations Service
	log       logger.Logger
}

func New(relations Service, log logger.Logger) *Handlers {
	return &Handlers{
		Relations: relations,
		log:       log,
	}
}
