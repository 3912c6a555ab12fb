package entity

// Reference data with find-or-create semantics when callers supply an
// unknown name.

type PracticeArea struct {
	BaseSimple
	Name        string  `db:"name"`
	Description *string `db:"description"`
}

type PracticeCourt struct {
	BaseSimple
	Name     string  `db:"name"`
	Location *string `db:"location"`
}

type Service struct {
	BaseSimple
	Name        string  `db:"name"`
	Description *string `db:"description"`
}
