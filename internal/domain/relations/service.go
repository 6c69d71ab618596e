package relations

import (
	"context"
	"time"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) ListPersonCompanies(ctx context.Context, personID int64) ([]PersonCompany, error) {
	if err := requireExists(ctx, s.repo.PersonExists, personID, ErrPersonNotFound); err != nil {
		return nil, err
	}

	links, err := s.repo.ListPersonCompanies(ctx, personID)
	if err != nil {
		return nil, err
	}
	if links == nil {
		links = []PersonCompany{}
	}
	return links, nil
}

func (s *Service) LinkPersonCompany(ctx context.Context, input LinkInput) (*Link, error) {
	if input.CompanyID < 1 {
		return nil, ErrInvalidID
	}

	year, month, day := s.now().Date()
	link := Link{
		CompanyID:    input.CompanyID,
		PersonID:     input.PersonID,
		RoleID:       input.RoleID,
		DepartmentID: input.DepartmentID,
		LoadedAt:     time.Date(year, month, day, 0, 0, 0, 0, time.UTC),
	}

	err := s.repo.Transaction(ctx, func(tx Repository) error {
		if err := requireExists(ctx, tx.PersonExists, input.PersonID, ErrPersonNotFound); err != nil {
			return err
		}
		if err := requireExists(ctx, tx.CompanyExists, input.CompanyID, ErrCompanyNotFound); err != nil {
			return err
		}
		return tx.CreateLink(ctx, &link)
	})
	if err != nil {
		return nil, err
	}

	return &link, nil
}

func (s *Service) UnlinkPersonCompany(ctx context.Context, personID, linkID int64) error {
	deleted, err := s.repo.DeleteLink(ctx, personID, linkID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrLinkNotFound
	}
	return nil
}

// AssignParcel sets the parcel's owning member. A nil member unassigns it.
func (s *Service) AssignParcel(ctx context.Context, parcelID int64, memberID *int64) error {
	return s.repo.Transaction(ctx, func(tx Repository) error {
		if err := requireExists(ctx, tx.ParcelExists, parcelID, ErrParcelNotFound); err != nil {
			return err
		}
		if memberID != nil {
			if err := requireExists(ctx, tx.MemberExists, *memberID, ErrMemberNotFound); err != nil {
				return err
			}
		}
		return tx.SetParcelMember(ctx, parcelID, memberID)
	})
}

func (s *Service) ListMemberParcels(ctx context.Context, memberID int64) ([]MemberParcel, error) {
	if err := requireExists(ctx, s.repo.MemberExists, memberID, ErrMemberNotFound); err != nil {
		return nil, err
	}

	parcels, err := s.repo.ListMemberParcels(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if parcels == nil {
		parcels = []MemberParcel{}
	}
	return parcels, nil
}

func requireExists(ctx context.Context, exists func(context.Context, int64) (bool, error), id int64, notFound error) error {
	ok, err := exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return notFound
	}
	return nil
}
