package relations

import (
	"net/http"

	relationsdomain "cepip-app-go/internal/domain/relations"
	"github.com/go-chi/chi/v5"
)

type personCompanyResponse struct {
	ID           int64   `json:"id"`
	CompanyID    int64   `json:"enteid"`
	RoleID       *int64  `json:"cargoid"`
	DepartmentID *int64  `json:"areaid"`
	Company      string  `json:"empresa"`
	Role         *string `json:"cargo"`
	Department   *string `json:"area"`
}

type personCompaniesResponse struct {
	Relations []personCompanyResponse `json:"relaciones"`
}

type createLinkRequest struct {
	CompanyID    int64  `json:"enteid"`
	RoleID       *int64 `json:"cargoid"`
	DepartmentID *int64 `json:"areaid"`
}

type linkResponse struct {
	ID           int64  `json:"id"`
	CompanyID    int64  `json:"enteid"`
	PersonID     int64  `json:"personaid"`
	RoleID       *int64 `json:"cargoid"`
	DepartmentID *int64 `json:"areaid"`
	LoadedAt     string `json:"fecha_de_carga"`
}

type createLinkResponse struct {
	Message  string       `json:"message"`
	Relation linkResponse `json:"relacion"`
}

type assignParcelRequest struct {
	MemberID *int64 `json:"consorcistaid"`
}

type memberParcelResponse struct {
	ID       int64    `json:"id"`
	Parcel   *string  `json:"parcela"`
	Street   *string  `json:"calle"`
	Number   *int64   `json:"numero"`
	Area     *float64 `json:"superficie_has"`
	HasPlant *bool    `json:"tieneplanta"`
	Rented   *bool    `json:"alquilada"`
	Fraction *string  `json:"fraccion"`
}

type memberParcelsResponse struct {
	Parcels []memberParcelResponse `json:"parcelas"`
}

func (h *Handlers) ListPersonCompanies(w http.ResponseWriter, r *http.Request) {
	personID, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	links, err := h.Relations.ListPersonCompanies(r.Context(), personID)
	if err != nil {
		h.writeServiceError(w, "relations.list", err, "person_id", personID)
		return
	}

	response := make([]personCompanyResponse, 0, len(links))
	for _, link := range links {
		response = append(response, personCompanyResponse{
			ID:           link.ID,
			CompanyID:    link.CompanyID,
			RoleID:       link.RoleID,
			DepartmentID: link.DepartmentID,
			Company:      link.Company,
			Role:         link.Role,
			Department:   link.Department,
		})
	}

	writeJSON(w, http.StatusOK, personCompaniesResponse{Relations: response})
}

func (h *Handlers) LinkPersonCompany(w http.ResponseWriter, r *http.Request) {
	personID, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	var req createLinkRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	link, err := h.Relations.LinkPersonCompany(r.Context(), relationsdomain.LinkInput{
		PersonID:     personID,
		CompanyID:    req.CompanyID,
		RoleID:       req.RoleID,
		DepartmentID: req.DepartmentID,
	})
	if err != nil {
		h.writeServiceError(w, "relations.create", err, "person_id", personID, "company_id", req.CompanyID)
		return
	}

	h.log.Info("relations.create: linked", "person_id", personID, "company_id", link.CompanyID, "relation_id", link.ID)
	writeJSON(w, http.StatusCreated, createLinkResponse{
		Message: "Relación creada exitosamente",
		Relation: linkResponse{
			ID:           link.ID,
			CompanyID:    link.CompanyID,
			PersonID:     link.PersonID,
			RoleID:       link.RoleID,
			DepartmentID: link.DepartmentID,
			LoadedAt:     link.LoadedAt.Format("2006-01-02"),
		},
	})
}

func (h *Handlers) UnlinkPersonCompany(w http.ResponseWriter, r *http.Request) {
	personID, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	linkID, err := parseID(chi.URLParam(r, "relationID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	if err := h.Relations.UnlinkPersonCompany(r.Context(), personID, linkID); err != nil {
		h.writeServiceError(w, "relations.delete", err, "person_id", personID, "relation_id", linkID)
		return
	}

	writeMessage(w, http.StatusOK, "Relación eliminada exitosamente")
}

func (h *Handlers) AssignParcel(w http.ResponseWriter, r *http.Request) {
	parcelID, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	var req assignParcelRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if req.MemberID != nil && *req.MemberID < 1 {
		req.MemberID = nil
	}

	if err := h.Relations.AssignParcel(r.Context(), parcelID, req.MemberID); err != nil {
		h.writeServiceError(w, "relations.assign_parcel", err, "parcel_id", parcelID)
		return
	}

	if req.MemberID == nil {
		writeMessage(w, http.StatusOK, "Parcela desasignada del consorcista exitosamente")
		return
	}
	writeMessage(w, http.StatusOK, "Parcela asignada al consorcista exitosamente")
}

func (h *Handlers) ListMemberParcels(w http.ResponseWriter, r *http.Request) {
	memberID, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	parcels, err := h.Relations.ListMemberParcels(r.Context(), memberID)
	if err != nil {
		h.writeServiceError(w, "relations.member_parcels", err, "member_id", memberID)
		return
	}

	response := make([]memberParcelResponse, 0, len(parcels))
	for _, parcel := range parcels {
		response = append(response, memberParcelResponse{
			ID:       parcel.ID,
			Parcel:   parcel.Parcel,
			Street:   parcel.Street,
			Number:   parcel.Number,
			Area:     parcel.Area,
			HasPlant: parcel.HasPlant,
			Rented:   parcel.Rented,
			Fraction: parcel.Fraction,
		})
	}

	writeJSON(w, http.StatusOK, memberParcelsResponse{Parcels: response})
}
