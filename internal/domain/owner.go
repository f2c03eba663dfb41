package domain

// Owner is the organization responsible for one or more parks.
type Owner struct {
	ID   int64
	Name string
}

// OwnerChanges is a sparse owner update.
type OwnerChanges struct {
	Name *string
}

// IsEmpty reports whether no field is set.
func (c OwnerChanges) IsEmpty() bool {
	return c.Name == nil
}
