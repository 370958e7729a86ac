package models

// GridQuery represents query parameters for a one-off grid.
// A missing dimension falls back to the session grid's.
type GridQuery struct {
	Rows *int `form:"rows"`
	Cols *int `form:"cols"`
}

// ClassifyQuery represents query parameters for classifying one draw
type ClassifyQuery struct {
	Draw     *float64 `form:"draw" binding:"required"` // 0-1
	Warning  *float64 `form:"warning"`
	Diseased *float64 `form:"diseased"`
}
