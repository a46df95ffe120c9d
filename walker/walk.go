package walker

import (
	"fmt"

	"github.com/erraggy/oasmodel/internal/maputil"
	"github.com/erraggy/oasmodel/internal/pathutil"
	"github.com/erraggy/oasmodel/parser"
)

// walk performs the actual traversal.
func (w *Walker) walk(spec *parser.Spec) error {
	w.stopped = false
	state := &walkState{ctx: w.userCtx}

	if w.onDocument != nil {
		wc := state.buildContext("$")
		if !w.handleAction(w.onDocument(wc, spec)) {
			return nil
		}
	}

	if spec.Info != nil && w.onInfo != nil {
		w.handleAction(w.onInfo(state.buildContext("$.info"), spec.Info))
		if w.stopped {
			return nil
		}
	}

	if err := w.walkPaths(spec.Paths, state); err != nil || w.stopped {
		return err
	}

	if spec.Components != nil {
		compState := state.clone()
		compState.isComponent = true
		return w.walkComponents(spec.Components, "$.components", compState)
	}
	return nil
}

// checkContext returns the error of a cancelled user context.
func (w *Walker) checkContext(state *walkState) error {
	if state.ctx == nil {
		return nil
	}
	return state.ctx.Err()
}

// walkPaths walks all paths in sorted order.
func (w *Walker) walkPaths(paths map[string]*parser.PathItem, state *walkState) error {
	for _, pathTemplate := range maputil.SortedKeys(paths) {
		if w.stopped {
			return nil
		}
		if err := w.checkContext(state); err != nil {
			return err
		}
		item := paths[pathTemplate]
		if item == nil {
			continue
		}

		itemPath := "$.paths" + pathutil.BracketKey(pathTemplate)
		pathState := state.clone()
		pathState.pathTemplate = pathTemplate

		if w.onPath != nil {
			wc := pathState.buildContext(itemPath)
			if !w.handleAction(w.onPath(wc, item)) {
				continue
			}
		}
		w.walkPathItem(item, itemPath, pathState)
	}
	return nil
}

// walkPathItem walks path-level parameters, then operations in canonical method order.
func (w *Walker) walkPathItem(item *parser.PathItem, basePath string, state *walkState) {
	w.walkParameters(item.Parameters, basePath+".parameters", state)

	for _, method := range parser.SortMethods(item.Operations) {
		if w.stopped {
			return
		}
		op := item.Operations[method]
		if op == nil {
			continue
		}
		opState := state.clone()
		opState.method = string(method)
		w.walkOperation(op, basePath+"."+string(method), opState)
	}
}

func (w *Walker) walkOperation(op *parser.Operation, basePath string, state *walkState) {
	if w.onOperation != nil {
		if !w.handleAction(w.onOperation(state.buildContext(basePath), op)) {
			return
		}
	}

	w.walkParameters(op.Parameters, basePath+".parameters", state)
	if w.stopped {
		return
	}

	if op.RequestBody != nil {
		w.walkRequestBody(op.RequestBody, basePath+".requestBody", state)
	}

	for _, code := range maputil.SortedKeys(op.Responses) {
		if w.stopped {
			return
		}
		resp := op.Responses[code]
		if resp == nil {
			continue
		}
		respState := state.clone()
		respState.statusCode = code
		w.walkResponse(resp, basePath+".responses"+pathutil.BracketKey(code), respState)
	}
}

func (w *Walker) walkParameters(params []parser.Object[parser.Parameter], basePath string, state *walkState) {
	for i, p := range params {
		if w.stopped {
			return
		}
		w.walkParameterCell(p, fmt.Sprintf("%s[%d]", basePath, i), state)
	}
}

func (w *Walker) walkParameterCell(o parser.Object[parser.Parameter], path string, state *walkState) {
	switch o.Kind() {
	case parser.KindReference:
		ref, _ := o.Reference()
		w.handleRef(ref, path, RefNodeParameter, state)
	case parser.KindValue:
		p, _ := o.Value()
		w.walkParameter(&p, path, state)
	}
}

func (w *Walker) walkParameter(p *parser.Parameter, basePath string, state *walkState) {
	if w.onParameter != nil {
		if !w.handleAction(w.onParameter(state.buildContext(basePath), p)) {
			return
		}
	}
	if p.Schema != nil {
		w.walkSchemaCell(*p.Schema, basePath+".schema", 0, state.named(""))
	}
}

func (w *Walker) walkRequestBody(rb *parser.RequestBody, basePath string, state *walkState) {
	if w.onRequestBody != nil {
		if !w.handleAction(w.onRequestBody(state.buildContext(basePath), rb)) {
			return
		}
	}
	w.walkContent(rb.Content, basePath+".content", state)
}

func (w *Walker) walkResponseCell(o parser.Object[parser.Response], path string, state *walkState) {
	switch o.Kind() {
	case parser.KindReference:
		ref, _ := o.Reference()
		w.handleRef(ref, path, RefNodeResponse, state)
	case parser.KindValue:
		r, _ := o.Value()
		w.walkResponse(&r, path, state)
	}
}

func (w *Walker) walkResponse(resp *parser.Response, basePath string, state *walkState) {
	if w.onResponse != nil {
		if !w.handleAction(w.onResponse(state.buildContext(basePath), resp)) {
			return
		}
	}

	for _, name := range maputil.SortedKeys(resp.Headers) {
		if w.stopped {
			return
		}
		w.walkHeaderCell(resp.Headers[name], basePath+".headers"+pathutil.BracketKey(name), state.named(name))
	}
	w.walkContent(resp.Content, basePath+".content", state)
}

func (w *Walker) walkHeaderCell(o parser.Object[parser.Header], path string, state *walkState) {
	switch o.Kind() {
	case parser.KindReference:
		ref, _ := o.Reference()
		w.handleRef(ref, path, RefNodeHeader, state)
	case parser.KindValue:
		h, _ := o.Value()
		w.walkHeader(&h, path, state)
	}
}

func (w *Walker) walkHeader(h *parser.Header, basePath string, state *walkState) {
	if w.onHeader != nil {
		if !w.handleAction(w.onHeader(state.buildContext(basePath), h)) {
			return
		}
	}
	w.walkSchema(&h.Schema, basePath+".schema", 0, state.named(""))
}

// walkContent walks a media type map in sorted order.
func (w *Walker) walkContent(content map[string]*parser.MediaType, basePath string, state *walkState) {
	for _, name := range maputil.SortedKeys(content) {
		if w.stopped {
			return
		}
		mt := content[name]
		if mt == nil {
			continue
		}
		mtPath := basePath + pathutil.BracketKey(name)
		if w.onMediaType != nil {
			if !w.handleAction(w.onMediaType(state.named(name).buildContext(mtPath), mt)) {
				continue
			}
		}
		w.walkSchemaCell(mt.Schema, mtPath+".schema", 0, state.named(""))
	}
}

func (w *Walker) walkSchemaCell(o parser.Object[parser.Schema], path string, depth int, state *walkState) {
	switch o.Kind() {
	case parser.KindReference:
		ref, _ := o.Reference()
		w.handleRef(ref, path, RefNodeSchema, state)
	case parser.KindValue:
		s, _ := o.Value()
		w.walkSchema(&s, path, depth, state)
	}
}

func (w *Walker) walkSchema(s *parser.Schema, basePath string, depth int, state *walkState) {
	if depth > w.maxDepth {
		if w.onSchemaSkipped != nil {
			w.onSchemaSkipped(state.buildContext(basePath), "depth", s)
		}
		return
	}

	if w.onSchema != nil {
		if !w.handleAction(w.onSchema(state.buildContext(basePath), s)) {
			return
		}
	}

	if s.Items != nil {
		w.walkSchemaCell(*s.Items, basePath+".items", depth+1, state.named(""))
	}
	for _, name := range maputil.SortedKeys(s.Properties) {
		if w.stopped {
			return
		}
		w.walkSchemaCell(s.Properties[name], basePath+".properties"+pathutil.BracketKey(name), depth+1, state.named(name))
	}
}

// walkComponents walks each component map in sorted order.
func (w *Walker) walkComponents(c *parser.Components, basePath string, state *walkState) error {
	for _, name := range maputil.SortedKeys(c.Schemas) {
		if w.stopped {
			return nil
		}
		if err := w.checkContext(state); err != nil {
			return err
		}
		w.walkSchemaCell(c.Schemas[name], basePath+".schemas"+pathutil.BracketKey(name), 0, state.named(name))
	}
	for _, name := range maputil.SortedKeys(c.Responses) {
		if w.stopped {
			return nil
		}
		w.walkResponseCell(c.Responses[name], basePath+".responses"+pathutil.BracketKey(name), state.named(name))
	}
	for _, name := range maputil.SortedKeys(c.Parameters) {
		if w.stopped {
			return nil
		}
		w.walkParameterCell(c.Parameters[name], basePath+".parameters"+pathutil.BracketKey(name), state.named(name))
	}
	for _, name := range maputil.SortedKeys(c.RequestBodies) {
		if w.stopped {
			return nil
		}
		if rb := c.RequestBodies[name]; rb != nil {
			w.walkRequestBody(rb, basePath+".requestBodies"+pathutil.BracketKey(name), state.named(name))
		}
	}
	for _, name := range maputil.SortedKeys(c.Headers) {
		if w.stopped {
			return nil
		}
		if h := c.Headers[name]; h != nil {
			w.walkHeader(h, basePath+".headers"+pathutil.BracketKey(name), state.named(name))
		}
	}
	return nil
}

// handleRef reports a $ref to the ref handler, if one is set.
func (w *Walker) handleRef(ref parser.Reference, jsonPath string, nodeType RefNodeType, state *walkState) {
	if w.onRef == nil {
		return
	}
	info := &RefInfo{
		Ref:         ref.Ref,
		Description: ref.Description,
		SourcePath:  jsonPath,
		NodeType:    nodeType,
	}
	wc := state.buildContext(jsonPath)
	wc.CurrentRef = info
	w.handleAction(w.onRef(wc, info))
}
