package records

import "time"

// Record is one result row keyed by column name. Values are passed through
// as the driver returns them.
type Record map[string]interface{}

type CreateInput struct {
	Entity Entity
	Values map[string]interface{}
	// ParcelIDs are assigned to a newly created consortium member.
	ParcelIDs []int64
}

type UpdateInput struct {
	Entity Entity
	ID     int64
	Values map[string]interface{}
}

type LookupItem struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type TableInfo struct {
	Name        string   `json:"name"`
	Label       string   `json:"label"`
	Description string   `json:"description"`
	PrimaryKey  string   `json:"primary_key"`
	Columns     []Column `json:"columns"`
	RecordCount int64    `json:"record_count"`
}

type TableCount struct {
	Table string `json:"table"`
	Count int64  `json:"count"`
}

// Stats counts rows per table. No record carries an inactive state, so
// InactiveRecords is always zero.
type Stats struct {
	TotalRecords    int64        `json:"totalRecords"`
	TotalTables     int          `json:"totalTables"`
	ActiveRecords   int64        `json:"activeRecords"`
	InactiveRecords int64        `json:"inactiveRecords"`
	LastUpdate      time.Time    `json:"lastUpdate"`
	TableStats      []TableCount `json:"tableStats"`
}

// Dashboard is the summary shown on the landing page.
type Dashboard struct {
	TotalRecords int64     `json:"totalRecords"`
	LastUpdate   time.Time `json:"lastUpdate"`
	SystemStatus string    `json:"systemStatus"`
}
