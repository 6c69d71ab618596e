package records

import "strings"

// Entity is the closed set of tables exposed through the records engine.
type Entity int

const (
	EntityCompany Entity = iota + 1
	EntityPerson
	EntityMember
	EntityParcel
	EntitySector
	EntityCategory
	EntitySubcategory
	EntityDepartment
	EntityRole
	EntityChamber
	EntityUnion
	EntityStreet
	EntityMemberType
)

var entityNames = map[Entity]string{
	EntityCompany:     "ente",
	EntityPerson:      "persona",
	EntityMember:      "consorcista",
	EntityParcel:      "parcela",
	EntitySector:      "sector",
	EntityCategory:    "rubro",
	EntitySubcategory: "subrubro",
	EntityDepartment:  "area",
	EntityRole:        "cargo",
	EntityChamber:     "camara",
	EntityUnion:       "sindicato",
	EntityStreet:      "calle",
	EntityMemberType:  "tipo_consorcista",
}

var entitiesByName = func() map[string]Entity {
	result := make(map[string]Entity, len(entityNames))
	for entity, name := range entityNames {
		result[name] = entity
	}
	return result
}()

// ParseEntity resolves a table name as it appears in URLs.
func ParseEntity(name string) (Entity, error) {
	entity, ok := entitiesByName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, ErrEntityNotFound
	}
	return entity, nil
}

func (e Entity) String() string {
	return entityNames[e]
}

// Table is the physical table name. It always comes from the static catalog.
func (e Entity) Table() string {
	return entityNames[e]
}

func (e Entity) Valid() bool {
	_, ok := entityNames[e]
	return ok
}

// Writable reports whether the entity accepts create, update and delete.
func (e Entity) Writable() bool {
	switch e {
	case EntityCompany, EntityPerson, EntityMember, EntityParcel:
		return true
	default:
		return false
	}
}

// Entities returns every entity in declaration order.
func Entities() []Entity {
	result := make([]Entity, 0, len(entityNames))
	for entity := EntityCompany; entity <= EntityMemberType; entity++ {
		result = append(result, entity)
	}
	return result
}

// Lookup is a named id/name list used by selection controls.
type Lookup int

const (
	LookupCompanies Lookup = iota + 1
	LookupRoles
	LookupDepartments
	LookupMembers
	LookupMemberTypes
	LookupSectors
	LookupCategories
	LookupSubcategories
	LookupChambers
	LookupUnions
	LookupStreets
)

type lookupSource struct {
	name string
	// key names the list in the response body.
	key     string
	table   string
	idCol   string
	nameCol string
}

var lookupSources = map[Lookup]lookupSource{
	LookupCompanies:     {name: "empresas", key: "empresas", table: "ente", idCol: "enteid", nameCol: "razonsocial"},
	LookupRoles:         {name: "cargos", key: "cargos", table: "cargo", idCol: "cargoid", nameCol: "cargo"},
	LookupDepartments:   {name: "areas", key: "areas", table: "area", idCol: "areaid", nameCol: "area"},
	LookupMembers:       {name: "consorcistas", key: "consorcistas", table: "consorcista", idCol: "consorcistaid", nameCol: "nombre"},
	LookupMemberTypes:   {name: "tipos-consorcista", key: "tipos", table: "tipo_consorcista", idCol: "tipoconsorcistaid", nameCol: "tipo"},
	LookupSectors:       {name: "sectores", key: "sectores", table: "sector", idCol: "sectorid", nameCol: "sector"},
	LookupCategories:    {name: "rubros", key: "rubros", table: "rubro", idCol: "rubroid", nameCol: "rubro"},
	LookupSubcategories: {name: "subrubros", key: "subrubros", table: "subrubro", idCol: "subrubroid", nameCol: "subrubro"},
	LookupChambers:      {name: "camaras", key: "camaras", table: "camara", idCol: "camaraid", nameCol: "camara"},
	LookupUnions:        {name: "sindicatos", key: "sindicatos", table: "sindicato", idCol: "sindicatoid", nameCol: "sindicato"},
	LookupStreets:       {name: "calles", key: "calles", table: "calle", idCol: "calleid", nameCol: "calle"},
}

var lookupsByName = func() map[string]Lookup {
	result := make(map[string]Lookup, len(lookupSources))
	for lookup, source := range lookupSources {
		result[source.name] = lookup
	}
	return result
}()

func ParseLookup(name string) (Lookup, error) {
	lookup, ok := lookupsByName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, ErrLookupNotFound
	}
	return lookup, nil
}

func (l Lookup) String() string {
	return lookupSources[l].name
}

// Key is the field the lookup list is wrapped in, e.g. {"tipos": [...]}.
func (l Lookup) Key() string {
	return lookupSources[l].key
}

// LookupStatement returns the id/name query for the lookup, ordered by name.
func LookupStatement(l Lookup) (Statement, error) {
	source, ok := lookupSources[l]
	if !ok {
		return Statement{}, ErrLookupNotFound
	}
	return Statement{
		SQL: "SELECT " + source.idCol + " AS id, " + source.nameCol + " AS name FROM " + source.table +
			" ORDER BY " + source.nameCol,
	}, nil
}
