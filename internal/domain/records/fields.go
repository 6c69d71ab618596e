package records

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
)

type fieldKind int

const (
	fieldText fieldKind = iota + 1
	fieldInteger
	fieldDecimal
	fieldBoolean
)

type field struct {
	name     string
	column   string
	kind     fieldKind
	required bool
}

type writeSpec struct {
	fields []field
	// manualID entities have no sequence; their key is max(id)+1.
	manualID bool
}

var writeSpecs = map[Entity]writeSpec{
	EntityCompany: {
		manualID: true,
		fields: []field{
			{name: "razonsocial", column: "razonsocial", kind: fieldText, required: true},
			{name: "cuit", column: "cuit", kind: fieldInteger},
			{name: "nro_socio_cepip", column: "nro_socio_cepip", kind: fieldInteger},
			{name: "web", column: "web", kind: fieldText},
			{name: "es_socio", column: "es_socio", kind: fieldBoolean},
			{name: "esconsorcista", column: "esconsorcista", kind: fieldBoolean},
			{name: "observaciones", column: "observaciones", kind: fieldText},
			{name: "actividadprincipalid", column: "actividadprincipalid", kind: fieldInteger},
			{name: "consorcistaid", column: "consorcistaid", kind: fieldInteger},
		},
	},
	EntityPerson: {
		manualID: true,
		fields: []field{
			{name: "nombre_apellido", column: "nombre_apellido", kind: fieldText, required: true},
			{name: "correo_electronico", column: "correo_electronico", kind: fieldText},
			{name: "telefono", column: "telefono", kind: fieldText},
			{name: "celular", column: "celular", kind: fieldText},
			{name: "consorcistaid", column: "consorcistaid", kind: fieldInteger},
		},
	},
	EntityMember: {
		fields: []field{
			{name: "nombre", column: "nombre", kind: fieldText, required: true},
			{name: "nro_consorcista", column: "nro_consorcista", kind: fieldInteger, required: true},
			{name: "tipoid", column: "tipoid", kind: fieldInteger},
		},
	},
	EntityParcel: {
		fields: []field{
			{name: "parcela", column: "parcela", kind: fieldText, required: true},
			{name: "calle", column: "calle", kind: fieldText},
			{name: "numero", column: "numero", kind: fieldInteger},
			{name: "superficie_has", column: "superficie_has_", kind: fieldDecimal},
			{name: "tieneplanta", column: "tieneplanta", kind: fieldBoolean},
			{name: "alquilada", column: "alquilada", kind: fieldBoolean},
			{name: "fraccion", column: "fraccion", kind: fieldText},
			{name: "consorcistaid", column: "consorcistaid", kind: fieldInteger},
		},
	},
}

// ManualID reports whether new keys of the entity are issued as max(id)+1.
func ManualID(entity Entity) bool {
	return writeSpecs[entity].manualID
}

// WritableFields lists the accepted input field names of a writable entity.
func WritableFields(entity Entity) []string {
	spec := writeSpecs[entity]
	names := make([]string, 0, len(spec.fields))
	for _, f := range spec.fields {
		names = append(names, f.name)
	}
	return names
}

// ValidateFields maps input field names to column values, checking names and
// types against the entity's writable fields. With partial set, required fields
// may be absent but not blank.
func ValidateFields(entity Entity, values map[string]interface{}, partial bool) (map[string]interface{}, error) {
	spec, ok := writeSpecs[entity]
	if !ok {
		return nil, ErrReadOnlyEntity
	}

	byName := make(map[string]field, len(spec.fields))
	for _, f := range spec.fields {
		byName[f.name] = f
	}

	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	columns := make(map[string]interface{}, len(values))
	for _, name := range names {
		f, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownField, name)
		}
		value, err := convertField(f, values[name])
		if err != nil {
			return nil, err
		}
		columns[f.column] = value
	}

	for _, f := range spec.fields {
		if !f.required {
			continue
		}
		value, present := columns[f.column]
		if !present && partial {
			continue
		}
		if value == nil {
			return nil, fmt.Errorf("%w: %s", ErrMissingField, f.name)
		}
		if text, ok := value.(string); ok && text == "" {
			return nil, fmt.Errorf("%w: %s", ErrMissingField, f.name)
		}
	}

	return columns, nil
}

func convertField(f field, value interface{}) (interface{}, error) {
	if value == nil {
		return nil, nil
	}

	invalid := fmt.Errorf("%w: %s", ErrInvalidField, f.name)
	switch f.kind {
	case fieldText:
		text, ok := value.(string)
		if !ok {
			return nil, invalid
		}
		return strings.TrimSpace(text), nil
	case fieldBoolean:
		flag, ok := value.(bool)
		if !ok {
			return nil, invalid
		}
		return flag, nil
	case fieldInteger:
		number, ok := toInt64(value)
		if !ok {
			return nil, invalid
		}
		return number, nil
	case fieldDecimal:
		number, ok := toFloat64(value)
		if !ok {
			return nil, invalid
		}
		return number, nil
	default:
		return nil, invalid
	}
}

// ParseIDList accepts a JSON array of integral numbers.
func ParseIDList(value interface{}) ([]int64, error) {
	if value == nil {
		return nil, nil
	}
	items, ok := value.([]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: parcela_ids", ErrInvalidField)
	}
	ids := make([]int64, 0, len(items))
	for _, item := range items {
		id, ok := toInt64(item)
		if !ok || id < 1 {
			return nil, fmt.Errorf("%w: parcela_ids", ErrInvalidField)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func toInt64(value interface{}) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int64:
		return v, true
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return int64(v), true
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	default:
		return 0, false
	}
}

func toFloat64(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case float64:
		return v, true
	case json.Number:
		n, err := v.Float64()
		return n, err == nil
	default:
		return 0, false
	}
}
