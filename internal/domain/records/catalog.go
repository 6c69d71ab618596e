package records

type ColumnType string

const (
	ColumnNumber  ColumnType = "number"
	ColumnText    ColumnType = "text"
	ColumnBoolean ColumnType = "boolean"
	ColumnDate    ColumnType = "date"
	ColumnEmail   ColumnType = "email"
)

// Column is display metadata for one field of a listing row.
type Column struct {
	Name  string     `json:"name"`
	Label string     `json:"label"`
	Type  ColumnType `json:"type"`
}

// Schema describes a queryable entity.
type Schema struct {
	Entity      Entity
	Label       string
	Description string
	PrimaryKey  string
	Columns     []Column
	// Grouped entities aggregate related rows, so filters apply as HAVING.
	Grouped bool
}

var schemas = map[Entity]Schema{
	EntityCompany: {
		Entity:      EntityCompany,
		Label:       "Entes (Empresas)",
		Description: "Empresas y entidades del parque industrial",
		PrimaryKey:  "enteid",
		Columns: []Column{
			{Name: "enteid", Label: "ID", Type: ColumnNumber},
			{Name: "razonsocial", Label: "Razón Social", Type: ColumnText},
			{Name: "cuit", Label: "CUIT", Type: ColumnNumber},
			{Name: "nro_socio_cepip", Label: "N° Socio CEPIP", Type: ColumnNumber},
			{Name: "sector_nombre", Label: "Sector", Type: ColumnText},
			{Name: "rubro_nombre", Label: "Rubro", Type: ColumnText},
			{Name: "es_socio", Label: "Es Socio", Type: ColumnBoolean},
			{Name: "esconsorcista", Label: "Es Consorcista", Type: ColumnBoolean},
			{Name: "web", Label: "Web", Type: ColumnText},
		},
	},
	EntityPerson: {
		Entity:      EntityPerson,
		Label:       "Personas",
		Description: "Personas asociadas a las empresas",
		PrimaryKey:  "personaid",
		Grouped:     true,
		Columns: []Column{
			{Name: "personaid", Label: "ID", Type: ColumnNumber},
			{Name: "nombre_apellido", Label: "Nombre y Apellido", Type: ColumnText},
			{Name: "correo_electronico", Label: "Email", Type: ColumnEmail},
			{Name: "telefono", Label: "Teléfono", Type: ColumnText},
			{Name: "celular", Label: "Celular", Type: ColumnText},
			{Name: "empresas", Label: "Empresas", Type: ColumnText},
			{Name: "cargos", Label: "Cargos", Type: ColumnText},
		},
	},
	EntityMember: {
		Entity:      EntityMember,
		Label:       "Consorcistas",
		Description: "Consorcistas del parque industrial",
		PrimaryKey:  "consorcistaid",
		Grouped:     true,
		Columns: []Column{
			{Name: "consorcistaid", Label: "ID", Type: ColumnNumber},
			{Name: "nombre", Label: "Nombre", Type: ColumnText},
			{Name: "nro_consorcista", Label: "N° Consorcista", Type: ColumnNumber},
			{Name: "tipo_nombre", Label: "Tipo", Type: ColumnText},
			{Name: "parcelas_count", Label: "Parcelas", Type: ColumnNumber},
			{Name: "empresas_count", Label: "Empresas", Type: ColumnNumber},
			{Name: "fecha_de_carga", Label: "Fecha Carga", Type: ColumnDate},
		},
	},
	EntityParcel: {
		Entity:      EntityParcel,
		Label:       "Parcelas",
		Description: "Parcelas del parque industrial",
		PrimaryKey:  "parcelaid",
		Columns: []Column{
			{Name: "parcelaid", Label: "ID", Type: ColumnNumber},
			{Name: "parcela", Label: "Parcela", Type: ColumnText},
			{Name: "calle", Label: "Calle", Type: ColumnText},
			{Name: "numero", Label: "Número", Type: ColumnNumber},
			{Name: "superficie_has", Label: "Superficie (ha)", Type: ColumnNumber},
			{Name: "tieneplanta", Label: "Tiene Planta", Type: ColumnBoolean},
			{Name: "alquilada", Label: "Alquilada", Type: ColumnBoolean},
			{Name: "consorcista_nombre", Label: "Consorcista", Type: ColumnText},
		},
	},
	EntitySector:      lookupSchema(EntitySector, "Sectores", "Sectores económicos", "sectorid", "sector", "Sector"),
	EntityCategory:    lookupSchema(EntityCategory, "Rubros", "Rubros de actividad", "rubroid", "rubro", "Rubro"),
	EntitySubcategory: lookupSchema(EntitySubcategory, "Subrubros", "Subrubros de actividad", "subrubroid", "subrubro", "Subrubro"),
	EntityDepartment:  lookupSchema(EntityDepartment, "Áreas", "Áreas de las empresas", "areaid", "area", "Área"),
	EntityRole:        lookupSchema(EntityRole, "Cargos", "Cargos de las personas", "cargoid", "cargo", "Cargo"),
	EntityChamber:     lookupSchema(EntityChamber, "Cámaras", "Cámaras empresarias", "camaraid", "camara", "Cámara"),
	EntityUnion:       lookupSchema(EntityUnion, "Sindicatos", "Sindicatos", "sindicatoid", "sindicato", "Sindicato"),
	EntityStreet:      lookupSchema(EntityStreet, "Calles", "Calles del parque industrial", "calleid", "calle", "Calle"),
	EntityMemberType:  lookupSchema(EntityMemberType, "Tipos de consorcista", "Tipos de consorcista", "tipoconsorcistaid", "tipo", "Tipo"),
}

func lookupSchema(entity Entity, label, description, idCol, nameCol, nameLabel string) Schema {
	return Schema{
		Entity:      entity,
		Label:       label,
		Description: description,
		PrimaryKey:  idCol,
		Columns: []Column{
			{Name: idCol, Label: "ID", Type: ColumnNumber},
			{Name: nameCol, Label: nameLabel, Type: ColumnText},
		},
	}
}

// Describe returns the catalog entry for the entity.
func Describe(entity Entity) (Schema, error) {
	schema, ok := schemas[entity]
	if !ok {
		return Schema{}, ErrEntityNotFound
	}
	schema.Columns = append([]Column(nil), schema.Columns...)
	return schema, nil
}

// Columns returns the listing column metadata, or nil for an unknown entity.
func Columns(entity Entity) []Column {
	schema, err := Describe(entity)
	if err != nil {
		return nil
	}
	return schema.Columns
}
