package relations

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	PersonExists(ctx context.Context, personID int64) (bool, error)
	CompanyExists(ctx context.Context, companyID int64) (bool, error)
	MemberExists(ctx context.Context, memberID int64) (bool, error)
	ParcelExists(ctx context.Context, parcelID int64) (bool, error)
	ListPersonCompanies(ctx context.Context, personID int64) ([]PersonCompany, error)
	CreateLink(ctx context.Context, link *Link) error
	DeleteLink(ctx context.Context, personID, linkID int64) (bool, error)
	SetParcelMember(ctx context.Context, parcelID int64, memberID *int64) error
	ListMemberParcels(ctx context.Context, memberID int64) ([]MemberParcel, error)
}
