package forms

// Controller binds a form definition to the container that owns the record.
// It keeps no copy of the record: every change is computed from the record the
// container passes in and pushed back out through the callbacks.
type Controller struct {
	Definition         *Definition
	OnDataChange       func(Record)
	OnValidationChange func(bool)
}

// Mount emits the validity of the record the form is mounted with and returns it.
// A nil record starts from the form defaults.
func (c *Controller) Mount(rec Record) Record {
	if rec == nil {
		rec = c.Definition.NewRecord()
	}
	c.notifyValidity(rec)
	return rec
}

// Change applies one field edit to current. On success OnDataChange receives the
// updated record and then OnValidationChange its validity. On error no callback fires.
func (c *Controller) Change(current Record, field string, value Value) (Record, error) {
	updated, err := c.Definition.Apply(current, Edit{Field: field, Value: value})
	if err != nil {
		return nil, err
	}
	if c.OnDataChange != nil {
		c.OnDataChange(updated)
	}
	c.notifyValidity(updated)
	return updated, nil
}

func (c *Controller) notifyValidity(rec Record) {
	if c.OnValidationChange != nil {
		c.OnValidationChange(c.Definition.IsValid(rec))
	}
}
