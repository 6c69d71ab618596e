package records

import (
	"strings"
)

const SearchParam = "search"

type filterKind int

const (
	filterBoolean filterKind = iota + 1
	// filterPresence compares a text column against NULL or ''. "false" drops
	// rows where the column is blank, "true" keeps only those rows.
	filterPresence
)

type filterDef struct {
	param  string
	kind   filterKind
	column string
}

type filterSet struct {
	search  []string
	filters []filterDef
}

var filterSets = map[Entity]filterSet{
	EntityCompany: {
		search: []string{"e.razonsocial", "CAST(e.cuit AS TEXT)", "CAST(e.nro_socio_cepip AS TEXT)", "e.web"},
		filters: []filterDef{
			{param: "es_socio", kind: filterBoolean, column: "e.es_socio"},
			{param: "esconsorcista", kind: filterBoolean, column: "e.esconsorcista"},
		},
	},
	EntityPerson: {
		search: []string{"p.nombre_apellido", "p.correo_electronico", "p.telefono", "p.celular"},
		filters: []filterDef{
			{param: "con_email", kind: filterPresence, column: "p.correo_electronico"},
			{param: "con_telefono", kind: filterPresence, column: "p.telefono"},
		},
	},
	EntityMember: {
		search: []string{"c.nombre", "CAST(c.nro_consorcista AS TEXT)"},
	},
	EntityParcel: {
		search: []string{"p.parcela", "p.calle", "CAST(p.numero AS TEXT)", "p.fraccion"},
		filters: []filterDef{
			{param: "tieneplanta", kind: filterBoolean, column: "p.tieneplanta"},
			{param: "alquilada", kind: filterBoolean, column: "p.alquilada"},
		},
	},
}

func filtersFor(entity Entity) filterSet {
	if set, ok := filterSets[entity]; ok {
		return set
	}
	schema, ok := schemas[entity]
	if !ok || len(schema.Columns) < 2 {
		return filterSet{}
	}
	return filterSet{search: []string{"t." + schema.Columns[1].Name}}
}

// FilterParams lists the query parameters recognized for the entity.
func FilterParams(entity Entity) []string {
	set := filtersFor(entity)
	if len(set.search) == 0 {
		return nil
	}
	params := []string{SearchParam}
	for _, filter := range set.filters {
		params = append(params, filter.param)
	}
	return params
}

// Predicate is a conjunction of conditions over bound named parameters.
type Predicate struct {
	Conditions []string
	Params     map[string]interface{}
}

func (p Predicate) Empty() bool {
	return len(p.Conditions) == 0
}

func (p Predicate) Expr() string {
	return strings.Join(p.Conditions, " AND ")
}

// Clause renders the predicate after keyword (WHERE or HAVING), or "" when empty.
func (p Predicate) Clause(keyword string) string {
	if p.Empty() {
		return ""
	}
	return " " + keyword + " " + p.Expr()
}

// likeEscaper neutralizes LIKE wildcards so a search matches literally.
// Backslash is the default LIKE escape character in PostgreSQL.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// BuildPredicate translates recognized filter parameters into a predicate.
// Unknown parameters and malformed boolean values are ignored.
func BuildPredicate(entity Entity, params map[string]string) Predicate {
	set := filtersFor(entity)
	predicate := Predicate{Params: make(map[string]interface{})}

	if search := strings.TrimSpace(params[SearchParam]); search != "" && len(set.search) > 0 {
		parts := make([]string, 0, len(set.search))
		for _, column := range set.search {
			parts = append(parts, column+" ILIKE @"+SearchParam)
		}
		predicate.Conditions = append(predicate.Conditions, "("+strings.Join(parts, " OR ")+")")
		predicate.Params[SearchParam] = "%" + likeEscaper.Replace(search) + "%"
	}

	for _, filter := range set.filters {
		value, ok := parseBool(params[filter.param])
		if !ok {
			continue
		}

		switch filter.kind {
		case filterBoolean:
			predicate.Conditions = append(predicate.Conditions, filter.column+" = @"+filter.param)
			predicate.Params[filter.param] = value
		case filterPresence:
			if value {
				predicate.Conditions = append(predicate.Conditions, "("+filter.column+" IS NULL OR "+filter.column+" = '')")
			} else {
				predicate.Conditions = append(predicate.Conditions, "("+filter.column+" IS NOT NULL AND "+filter.column+" <> '')")
			}
		}
	}

	return predicate
}

func parseBool(value string) (bool, bool) {
	switch value {
	case "true":
		return true, true
	case "false":
		return false, true
	default:
		return false, false
	}
}
