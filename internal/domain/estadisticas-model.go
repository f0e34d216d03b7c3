package domain

// Estadisticas maps the v_estadisticas view: a precomputed rollup over
// matriculas maintained by the database. Read-only; the PENDIENTE request
// count is queried live on top of it.
type Estadisticas struct {
	TotalMatriculas int64 `gorm:"column:total_matriculas" json:"total_matriculas"`
	Activas         int64 `gorm:"column:activas" json:"activas"`
}

func (Estadisticas) TableName() string {
	return "v_estadisticas"
}
