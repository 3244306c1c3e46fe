package dao

// Parameter narrows a List call, e.g. by namespace or tag.
type Parameter struct {
	Name  string
	Value interface{}
}
