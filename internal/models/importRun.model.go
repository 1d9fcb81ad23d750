package models

// ImportRun records one roster import attempt so the dashboard can show
// import history alongside the roster itself.
type ImportRun struct {
	BaseUUIDModel
	TotalRows     int     `gorm:"not null"                  json:"totalRows"`
	ErrorRows     int     `gorm:"not null"                  json:"errorRows"`
	ImportedCount int     `gorm:"not null"                  json:"importedCount"`
	Status        string  `gorm:"type:varchar(20);not null" json:"status"` // 'running', 'completed', 'partial', 'failed'
	FailedBatch   *int    `gorm:"type:int"                  json:"failedBatch,omitempty"`
	DurationMs    *int    `gorm:"type:int"                  json:"durationMs,omitempty"`
	ErrorMessage  *string `gorm:"type:text"                 json:"errorMessage,omitempty"`
}

const (
	ImportRunRunning   = "running"
	ImportRunCompleted = "completed"
	ImportRunPartial   = "partial"
	ImportRunFailed    = "failed"
)
