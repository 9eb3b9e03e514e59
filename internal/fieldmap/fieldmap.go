// Package fieldmap is the single translation point between the
// application's field names and the backend table columns. No other
// package may spell a storage column name.
package fieldmap

// OwnerColumn carries the id of the user who created the row. It is
// stamped at insert time and is never part of an application entity.
const OwnerColumn = "user_id"

// Mapping is a fixed rename table from application field names to
// storage column names for one entity.
type Mapping map[string]string

var (
	Client = Mapping{
		"id":            "id",
		"name":          "name",
		"contactPerson": "contact_person",
		"phone":         "phone",
		"email":         "email",
		"address":       "address",
		"city":          "city",
		"notes":         "notes",
		"createdAt":     "created_at",
	}

	Visit = Mapping{
		"id":           "id",
		"clientId":     "client_id",
		"date":         "date",
		"type":         "type",
		"result":       "result",
		"notes":        "notes",
		"followUpDate": "follow_up_date",
	}

	Reminder = Mapping{
		"id":        "id",
		"clientId":  "client_id",
		"title":     "title",
		"date":      "date",
		"completed": "completed",
	}
)

// Column returns the storage column for an application field name.
// Asking for a field outside the entity's defined set is a programming
// error.
func (m Mapping) Column(field string) string {
	col, ok := m[field]
	if !ok {
		panic("fieldmap: unknown field " + field)
	}
	return col
}

// ToStorage renames every recognized field of the partial to its storage
// column. Absent fields stay absent; unrecognized fields are dropped.
// Defaulting is not done here.
func (m Mapping) ToStorage(fields map[string]any) map[string]any {
	row := make(map[string]any, len(fields))
	for field, col := range m {
		if v, ok := fields[field]; ok {
			row[col] = v
		}
	}
	return row
}

// FromStorage renames every recognized column of the row back to its
// application field name. Unrecognized columns are dropped silently.
func (m Mapping) FromStorage(row map[string]any) map[string]any {
	fields := make(map[string]any, len(row))
	for field, col := range m {
		if v, ok := row[col]; ok {
			fields[field] = v
		}
	}
	return fields
}
