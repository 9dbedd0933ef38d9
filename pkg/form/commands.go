package form

// Command is one typed form event. The set is closed: SetField, SetSource,
// AddSource, RemoveSource and ToggleAttestation.
type Command interface {
	command()
}

// SetField replaces a scalar field.
type SetField struct {
	Field FieldName
	Value string
}

// SetSource replaces the approved source at Index.
type SetSource struct {
	Index int
	Value string
}

// AddSource appends a blank approved source.
type AddSource struct{}

// RemoveSource deletes the approved source at Index.
type RemoveSource struct {
	Index int
}

// ToggleAttestation adds or removes an attestation id.
type ToggleAttestation struct {
	ID      string
	Checked bool
}

func (SetField) command()          {}
func (SetSource) command()         {}
func (AddSource) command()         {}
func (RemoveSource) command()      {}
func (ToggleAttestation) command() {}
