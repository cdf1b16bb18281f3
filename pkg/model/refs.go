package model

// classRefCache memoizes the aggregated inter-class reference sets of
// spec.md §4.4; these are pure functions of the (immutable) image, so they
// are computed once per class and reused across every level's scoring pass.
type classRefCache struct {
	outClassRefs    map[*Class]struct{}
	inClassRefs     map[*Class]struct{}
	methodOutRefs   map[*Method]struct{}
	methodInRefs    map[*Method]struct{}
	fieldReaders    map[*Method]struct{}
	fieldWriters    map[*Method]struct{}
}

// OutClassRefs returns the set of classes mentioned in c's methods' bodies
// or used as a field type, aggregated across all of c's members.
//
// Ranking runs these getters from several goroutines at once against a
// shared, nominally read-only image (pkg/match.rankConcurrently), so the
// lazy memoization below is guarded by c.refsMu rather than relying on the
// caller to serialize access.
func (c *Class) OutClassRefs() map[*Class]struct{} {
	c.refsMu.Lock()
	defer c.refsMu.Unlock()

	if c.refsCache == nil {
		c.refsCache = &classRefCache{}
	}
	if c.refsCache.outClassRefs != nil {
		return c.refsCache.outClassRefs
	}
	out := make(map[*Class]struct{})
	for _, m := range c.Methods {
		for ref := range m.ClassRefs {
			out[ref] = struct{}{}
		}
	}
	for _, f := range c.Fields {
		if f.Type != nil {
			out[f.Type] = struct{}{}
		}
	}
	c.refsCache.outClassRefs = out
	return out
}

// InClassRefs returns the set of classes whose methods or fields declare a
// type referencing c.
func (c *Class) InClassRefs() map[*Class]struct{} {
	c.refsMu.Lock()
	defer c.refsMu.Unlock()

	if c.refsCache == nil {
		c.refsCache = &classRefCache{}
	}
	if c.refsCache.inClassRefs != nil {
		return c.refsCache.inClassRefs
	}
	in := make(map[*Class]struct{})
	for m := range c.MethodTypeRefs {
		if m.Owner != nil {
			in[m.Owner] = struct{}{}
		}
	}
	for f := range c.FieldTypeRefs {
		if f.Owner != nil {
			in[f.Owner] = struct{}{}
		}
	}
	c.refsCache.inClassRefs = in
	return in
}

// AggregatedMethodOutRefs unions RefsOut across every method owned by c,
// the class-level aggregate the "method out references" feature compares
// with compare.MethodSets (spec.md §4.2, SECONDARY level and above).
func (c *Class) AggregatedMethodOutRefs() map[*Method]struct{} {
	c.refsMu.Lock()
	defer c.refsMu.Unlock()

	if c.refsCache == nil {
		c.refsCache = &classRefCache{}
	}
	if c.refsCache.methodOutRefs != nil {
		return c.refsCache.methodOutRefs
	}
	out := make(map[*Method]struct{})
	for _, m := range c.Methods {
		for callee := range m.RefsOut {
			out[callee] = struct{}{}
		}
	}
	c.refsCache.methodOutRefs = out
	return out
}

// AggregatedMethodInRefs unions RefsIn across every method owned by c.
func (c *Class) AggregatedMethodInRefs() map[*Method]struct{} {
	c.refsMu.Lock()
	defer c.refsMu.Unlock()

	if c.refsCache == nil {
		c.refsCache = &classRefCache{}
	}
	if c.refsCache.methodInRefs != nil {
		return c.refsCache.methodInRefs
	}
	in := make(map[*Method]struct{})
	for _, m := range c.Methods {
		for caller := range m.RefsIn {
			in[caller] = struct{}{}
		}
	}
	c.refsCache.methodInRefs = in
	return in
}

// AggregatedFieldReaders unions every field's Readers across c's fields.
func (c *Class) AggregatedFieldReaders() map[*Method]struct{} {
	c.refsMu.Lock()
	defer c.refsMu.Unlock()

	if c.refsCache == nil {
		c.refsCache = &classRefCache{}
	}
	if c.refsCache.fieldReaders != nil {
		return c.refsCache.fieldReaders
	}
	out := make(map[*Method]struct{})
	for _, f := range c.Fields {
		for m := range f.Readers {
			out[m] = struct{}{}
		}
	}
	c.refsCache.fieldReaders = out
	return out
}

// AggregatedFieldWriters unions every field's Writers across c's fields.
func (c *Class) AggregatedFieldWriters() map[*Method]struct{} {
	c.refsMu.Lock()
	defer c.refsMu.Unlock()

	if c.refsCache == nil {
		c.refsCache = &classRefCache{}
	}
	if c.refsCache.fieldWriters != nil {
		return c.refsCache.fieldWriters
	}
	out := make(map[*Method]struct{})
	for _, f := range c.Fields {
		for m := range f.Writers {
			out[m] = struct{}{}
		}
	}
	c.refsCache.fieldWriters = out
	return out
}

// OutMethodRefs returns the methods m calls.
func (m *Method) OutMethodRefs() map[*Method]struct{} {
	return m.RefsOut
}

// InMethodRefs returns the methods that call m.
func (m *Method) InMethodRefs() map[*Method]struct{} {
	return m.RefsIn
}

// FieldReads returns the fields m reads.
func (m *Method) FieldReads() map[*Field]struct{} {
	return m.FieldReadRefs
}

// FieldWrites returns the fields m writes.
func (m *Method) FieldWrites() map[*Field]struct{} {
	return m.FieldWriteRefs
}

// InvalidateRefCache drops memoized aggregates; exposed for assemblers that
// mutate an image incrementally and need to force recomputation. The core
// matcher never calls this since images are immutable once handed to it.
func (c *Class) InvalidateRefCache() {
	c.refsMu.Lock()
	defer c.refsMu.Unlock()
	c.refsCache = nil
}
