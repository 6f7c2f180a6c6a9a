package catalog

import "time"

// Language is a programming language catalog entry.
type Language struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	EntryThreshold string    `json:"entryThreshold"`
	ExecutionModel string    `json:"executionModel"`
	Popularity     string    `json:"popularity"`
	Purpose        string    `json:"purpose"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Framework is a framework catalog entry referencing its languages.
type Framework struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	LanguageIDs   []int64    `json:"languageIds"`
	IsReactive    bool       `json:"isReactive"`
	IsActual      bool       `json:"isActual"`
	TasksType     string     `json:"tasksType"`
	LastUpdatedAt *time.Time `json:"lastUpdatedAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// DataStorage is a data storage catalog entry.
type DataStorage struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	StorageType     string    `json:"storageType"`
	StorageLocation string    `json:"storageLocation"`
	DatabaseType    string    `json:"databaseType"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Enum values accepted on create. The engine owns the semantics; the catalog
// only guards against typos reaching the knowledge base.
var (
	entryThresholds  = map[string]bool{"low": true, "medium": true, "high": true}
	executionModels  = map[string]bool{"interpretable": true, "compiled": true, "hybrid": true}
	popularities     = map[string]bool{"popular": true, "actual": true, "out_of_general_use": true}
	purposes         = map[string]bool{"universal": true, "web_backend": true, "web_frontend": true, "mobile": true, "desktop": true, "data_science": true}
	tasksTypes       = map[string]bool{"backend": true, "frontend": true, "mobile": true, "desktop": true}
	storageTypes     = map[string]bool{"relational": true, "document": true, "key-value": true}
	storageLocations = map[string]bool{"local": true, "remote": true}
	databaseTypes    = map[string]bool{"sql": true, "no_sql": true}
)
