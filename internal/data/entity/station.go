package entity

type Station struct {
	Base
	Name string `db:"name"`
	Code string `db:"code"` // GMR, BD, etc.
	City string `db:"city"`
}
