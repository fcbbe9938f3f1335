package adapters

import (
	"errors"

	"github.com/vsql-project/vsql/core"
)

// getGenericStructure converts a stream of (schema, name, type) rows to
// a schema-grouped structure tree.
func getGenericStructure(rows core.ResultStream, decodeType func(string) core.StructureType) ([]*core.Structure, error) {
	children := make(map[string][]*core.Structure)

	for rows.HasNext() {
		row, err := rows.Next()
		if err != nil {
			return nil, err
		}

		if len(row) < 3 {
			return nil, errors.New("could not retrieve structure: insufficient data")
		}

		schema, ok1 := row[0].(string)
		name, ok2 := row[1].(string)
		typ, ok3 := row[2].(string)
		if !ok1 || !ok2 || !ok3 {
			return nil, errors.New("could not retrieve structure: invalid data")
		}

		children[schema] = append(children[schema], &core.Structure{
			Name:   name,
			Schema: schema,
			Type:   decodeType(typ),
		})
	}

	var structure []*core.Structure

	for k, v := range children {
		structure = append(structure, &core.Structure{
			Name:     k,
			Schema:   k,
			Type:     core.StructureTypeNone,
			Children: v,
		})
	}

	return structure, nil
}

// getSQLStructureType returns the structure type based on the provided string.
func getSQLStructureType(typ string) core.StructureType {
	switch typ {
	case "TABLE", "BASE TABLE", "FOREIGN", "FOREIGN TABLE", "SYSTEM TABLE", "table":
		return core.StructureTypeTable
	case "VIEW", "SYSTEM VIEW", "MATERIALIZED VIEW", "view":
		return core.StructureTypeView
	default:
		return core.StructureTypeNone
	}
}
