package models

// PredictionScore reports the outcome of scoring a single prediction during a
// finalization run. Recalculated is true when the overwrite changed the
// previously stored value.
type PredictionScore struct {
	PredictionID int                `json:"prediction_id"`
	Category     PredictionCategory `json:"category"`
	UserID       int                `json:"user_id"`
	PointsEarned int                `json:"points_earned"`
	Recalculated bool               `json:"recalculated"`
}

// PredictionError is a per-item failure inside a batch; it never aborts the
// rest of the batch.
type PredictionError struct {
	PredictionID int                `json:"prediction_id"`
	Category     PredictionCategory `json:"category"`
	Error        string             `json:"error"`
}

type FinalizationSummary struct {
	Scored []PredictionScore `json:"scored"`
	Errors []PredictionError `json:"errors"`
	// Users whose aggregates were recomputed after scoring, and any per-user
	// recompute failures.
	RecomputedUsers []int            `json:"recomputed_users"`
	RecomputeErrors []RecomputeError `json:"recompute_errors,omitempty"`
}

// RecomputeError is a per-user failure during a bulk recomputation.
type RecomputeError struct {
	UserID int    `json:"user_id"`
	Error  string `json:"error"`
}

type RecomputeSummary struct {
	UsersProcessed int              `json:"users_processed"`
	Errors         []RecomputeError `json:"errors"`
}
