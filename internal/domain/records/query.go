package records

import (
	"strings"
)

// Statement is SQL text with named parameters (@name).
type Statement struct {
	SQL    string
	Params map[string]interface{}
}

// shape is the join and aggregation descriptor of an entity listing.
type shape struct {
	from    string
	selects []string
	// groupBy is set for grouped entities and lists every non-aggregated column.
	groupBy []string
	key     string
}

var shapes = map[Entity]shape{
	EntityParcel: {
		from: "parcela p LEFT JOIN consorcista c ON p.consorcistaid = c.consorcistaid",
		selects: []string{
			"p.*",
			"p.superficie_has_ AS superficie_has",
			"c.nombre AS consorcista_nombre",
		},
		key: "p.parcelaid",
	},
	EntityCompany: {
		from: "ente e" +
			" LEFT JOIN subrubro sr ON e.actividadprincipalid = sr.subrubroid" +
			" LEFT JOIN rubro r ON sr.rubroid = r.rubroid" +
			" LEFT JOIN sector s ON r.sectorid = s.sectorid",
		selects: []string{
			"e.*",
			"s.sector AS sector_nombre",
			"r.rubro AS rubro_nombre",
			"sr.subrubro AS subrubro_nombre",
		},
		key: "e.enteid",
	},
	EntityPerson: {
		from: "persona p" +
			" LEFT JOIN relacion_ente_persona rep ON p.personaid = rep.personaid" +
			" LEFT JOIN ente e ON rep.enteid = e.enteid" +
			" LEFT JOIN cargo c ON rep.cargoid = c.cargoid",
		selects: []string{
			"p.personaid",
			"p.fecha_de_carga",
			"p.nombre_apellido",
			"p.telefono",
			"p.celular",
			"p.correo_electronico",
			"p.consorcistaid",
			"STRING_AGG(DISTINCT e.razonsocial, ', ' ORDER BY e.razonsocial) AS empresas",
			"STRING_AGG(DISTINCT c.cargo, ', ' ORDER BY c.cargo) AS cargos",
		},
		groupBy: []string{
			"p.personaid",
			"p.fecha_de_carga",
			"p.nombre_apellido",
			"p.telefono",
			"p.celular",
			"p.correo_electronico",
			"p.consorcistaid",
		},
		key: "p.personaid",
	},
	EntityMember: {
		from: "consorcista c" +
			" LEFT JOIN tipo_consorcista tc ON c.tipoid = tc.tipoconsorcistaid" +
			" LEFT JOIN parcela p ON c.consorcistaid = p.consorcistaid" +
			" LEFT JOIN ente e ON c.consorcistaid = e.consorcistaid",
		selects: []string{
			"c.consorcistaid",
			"c.nombre",
			"c.nro_consorcista",
			"c.tipoid",
			"c.fecha_de_carga",
			"tc.tipo AS tipo_nombre",
			"COUNT(DISTINCT p.parcelaid) AS parcelas_count",
			"COUNT(DISTINCT e.enteid) AS empresas_count",
		},
		groupBy: []string{
			"c.consorcistaid",
			"c.nombre",
			"c.nro_consorcista",
			"c.tipoid",
			"c.fecha_de_carga",
			"tc.tipo",
		},
		key: "c.consorcistaid",
	},
}

func shapeFor(entity Entity) shape {
	if s, ok := shapes[entity]; ok {
		return s
	}
	return shape{
		from:    entity.Table() + " t",
		selects: []string{"t.*"},
		key:     "t." + schemas[entity].PrimaryKey,
	}
}

// Compose builds the paginated data statement and the matching count statement.
// Both carry the same predicate so filtered totals agree with filtered pages.
func Compose(entity Entity, predicate Predicate, page PageRequest) (Statement, Statement) {
	s := shapeFor(entity)
	page = page.Normalize()

	var body strings.Builder
	body.WriteString(" FROM ")
	body.WriteString(s.from)
	if len(s.groupBy) > 0 {
		body.WriteString(" GROUP BY ")
		body.WriteString(strings.Join(s.groupBy, ", "))
		body.WriteString(predicate.Clause("HAVING"))
	} else {
		body.WriteString(predicate.Clause("WHERE"))
	}

	dataParams := copyParams(predicate.Params)
	dataParams["limit"] = page.Limit
	dataParams["offset"] = page.Offset()

	data := Statement{
		SQL: "SELECT " + strings.Join(s.selects, ", ") + body.String() +
			" ORDER BY " + s.key + " LIMIT @limit OFFSET @offset",
		Params: dataParams,
	}

	var countSQL string
	if len(s.groupBy) > 0 {
		countSQL = "SELECT COUNT(*) FROM (SELECT " + s.key + body.String() + ") AS filtered"
	} else {
		countSQL = "SELECT COUNT(*)" + body.String()
	}

	count := Statement{SQL: countSQL, Params: copyParams(predicate.Params)}
	return data, count
}

// ComposeAll builds the unpaginated data statement used for exports.
func ComposeAll(entity Entity, predicate Predicate) Statement {
	s := shapeFor(entity)

	sql := "SELECT " + strings.Join(s.selects, ", ") + " FROM " + s.from
	if len(s.groupBy) > 0 {
		sql += " GROUP BY " + strings.Join(s.groupBy, ", ") + predicate.Clause("HAVING")
	} else {
		sql += predicate.Clause("WHERE")
	}
	sql += " ORDER BY " + s.key

	return Statement{SQL: sql, Params: copyParams(predicate.Params)}
}

// ComposeByID selects the single projected row whose primary key is id.
func ComposeByID(entity Entity, id int64) Statement {
	s := shapeFor(entity)

	sql := "SELECT " + strings.Join(s.selects, ", ") + " FROM " + s.from + " WHERE " + s.key + " = @id"
	if len(s.groupBy) > 0 {
		sql += " GROUP BY " + strings.Join(s.groupBy, ", ")
	}

	return Statement{SQL: sql, Params: map[string]interface{}{"id": id}}
}

// CountStatement counts every row of the entity table.
func CountStatement(entity Entity) Statement {
	return Statement{SQL: "SELECT COUNT(*) FROM " + entity.Table()}
}

func copyParams(params map[string]interface{}) map[string]interface{} {
	result := make(map[string]interface{}, len(params)+2)
	for key, value := range params {
		result[key] = value
	}
	return result
}
