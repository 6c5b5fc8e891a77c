package models

// Two ingredients may share a name as long as the unit differs
// ("milk, ml" vs "milk, g"), so uniqueness is on the pair.
type Ingredient struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	Name            string `gorm:"size:128;uniqueIndex:idx_ingredient_name_unit;not null" json:"name"`
	MeasurementUnit string `gorm:"size:64;uniqueIndex:idx_ingredient_name_unit;not null" json:"measurement_unit"`
}
