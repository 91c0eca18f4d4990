package generator

import "gitlab.com/tozd/go/errors"

// Register adds an empty compound for name. It reports false if name was
// already registered, in which case the existing entry is left alone.
func (d *Descriptor) Register(name string) bool {
	if _, ok := d.ScriptBinds.Get(name); ok {
		return false
	}
	d.ScriptBinds.Set(name, NewCompound())
	return true
}

// Merge folds an extracted compound into the registered entry for name. A
// non-empty description replaces the current one and methods are added in
// order, replacing same-named methods in place.
func (d *Descriptor) Merge(name string, c *Compound) error {
	existing, ok := d.ScriptBinds.Get(name)
	if !ok {
		return errors.Errorf("%w: %q", ErrUnregistered, name)
	}
	if c.Description != "" {
		existing.Description = c.Description
	}
	for _, method := range c.Methods.Keys() {
		m, _ := c.Methods.Get(method)
		existing.Methods.Set(method, m)
	}
	return nil
}

// Compound returns the entry registered under name.
func (d *Descriptor) Compound(name string) (*Compound, bool) {
	return d.ScriptBinds.Get(name)
}

// Names returns the registered short names in index order.
func (d *Descriptor) Names() []string {
	return d.ScriptBinds.Keys()
}

// MethodCount returns the number of methods over all compounds.
func (d *Descriptor) MethodCount() int {
	total := 0
	for _, name := range d.ScriptBinds.Keys() {
		c, _ := d.ScriptBinds.Get(name)
		total += c.Methods.Len()
	}
	return total
}
