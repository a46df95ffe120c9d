package parser

// DocumentStats contains statistical information about a document
type DocumentStats struct {
	PathCount      int // Number of paths defined
	OperationCount int // Total number of operations across all paths
	SchemaCount    int // Number of component schemas
	ComponentCount int // Number of components of every kind
	ReferenceCount int // Number of $ref cells anywhere in the document
}

// GetDocumentStats returns statistics for a decoded document
func GetDocumentStats(spec *Spec) DocumentStats {
	stats := DocumentStats{}
	if spec == nil {
		return stats
	}

	stats.PathCount = len(spec.Paths)
	for _, item := range spec.Paths {
		if item == nil {
			continue
		}
		stats.OperationCount += len(item.Operations)
		stats.ReferenceCount += countPathItemRefs(item)
	}

	if c := spec.Components; c != nil {
		stats.SchemaCount = len(c.Schemas)
		stats.ComponentCount = len(c.Schemas) + len(c.Responses) + len(c.Parameters) +
			len(c.RequestBodies) + len(c.Headers)
		for _, s := range c.Schemas {
			stats.ReferenceCount += countSchemaRefs(s)
		}
		for _, r := range c.Responses {
			stats.ReferenceCount += countResponseRefs(r)
		}
		for _, p := range c.Parameters {
			stats.ReferenceCount += countParameterRefs(p)
		}
		for _, rb := range c.RequestBodies {
			stats.ReferenceCount += countRequestBodyRefs(rb)
		}
		for _, h := range c.Headers {
			if h != nil {
				stats.ReferenceCount += countSchemaRefs(ValueOf(h.Schema))
			}
		}
	}

	return stats
}

func countPathItemRefs(item *PathItem) int {
	n := 0
	for _, p := range item.Parameters {
		n += countParameterRefs(p)
	}
	for _, op := range item.Operations {
		if op == nil {
			continue
		}
		for _, p := range op.Parameters {
			n += countParameterRefs(p)
		}
		n += countRequestBodyRefs(op.RequestBody)
		for _, r := range op.Responses {
			if r != nil {
				n += countResponseRefs(ValueOf(*r))
			}
		}
	}
	return n
}

func countParameterRefs(o Object[Parameter]) int {
	if o.IsReference() {
		return 1
	}
	if p, ok := o.Value(); ok && p.Schema != nil {
		return countSchemaRefs(*p.Schema)
	}
	return 0
}

func countRequestBodyRefs(rb *RequestBody) int {
	if rb == nil {
		return 0
	}
	return countContentRefs(rb.Content)
}

func countResponseRefs(o Object[Response]) int {
	if o.IsReference() {
		return 1
	}
	r, ok := o.Value()
	if !ok {
		return 0
	}
	n := countContentRefs(r.Content)
	for _, h := range r.Headers {
		if h.IsReference() {
			n++
		} else if hv, ok := h.Value(); ok {
			n += countSchemaRefs(ValueOf(hv.Schema))
		}
	}
	return n
}

func countContentRefs(content map[string]*MediaType) int {
	n := 0
	for _, mt := range content {
		if mt != nil {
			n += countSchemaRefs(mt.Schema)
		}
	}
	return n
}

func countSchemaRefs(o Object[Schema]) int {
	if o.IsReference() {
		return 1
	}
	s, ok := o.Value()
	if !ok {
		return 0
	}
	n := 0
	if s.Items != nil {
		n += countSchemaRefs(*s.Items)
	}
	for _, p := range s.Properties {
		n += countSchemaRefs(p)
	}
	return n
}
