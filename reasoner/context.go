package reasoner

// Context holds the saturation state for a single concept c.
//
//   - superSet: S(c), the set of all derived superclasses. Contains c and
//     TOP from initialization and only grows.
//   - linkMap[r]: the set of targets d such that c —r→ d has been derived.
//   - predMap[r]: the set of sources s such that s —r→ c has been derived
//     (the transpose of linkMap, maintained across all contexts).
type Context struct {
	id CId

	superSet map[CId]struct{}
	linkMap  []map[CId]struct{}
	predMap  []map[CId]struct{}
}

func newContext(id CId, numRoles int) Context {
	ctx := Context{
		id:       id,
		superSet: make(map[CId]struct{}, 8),
	}
	if numRoles > 0 {
		ctx.linkMap = make([]map[CId]struct{}, numRoles)
		ctx.predMap = make([]map[CId]struct{}, numRoles)
	}
	return ctx
}

// HasSuper reports whether d ∈ S(c).
func (c *Context) HasSuper(d CId) bool {
	_, ok := c.superSet[d]
	return ok
}

// addSuper idempotently inserts d into S(c), returning whether it was new.
func (c *Context) addSuper(d CId) bool {
	if _, ok := c.superSet[d]; ok {
		return false
	}
	c.superSet[d] = struct{}{}
	return true
}

// HasLink reports whether d ∈ linkMap(c)[r].
func (c *Context) HasLink(r RId, d CId) bool {
	if int(r) >= len(c.linkMap) || c.linkMap[r] == nil {
		return false
	}
	_, ok := c.linkMap[r][d]
	return ok
}

// Len returns the number of derived superclasses, |S(c)|.
func (c *Context) Len() int { return len(c.superSet) }

// installLink performs the atomic joint update of source.linkMap[r] and
// target.predMap[r] required by invariant 2 (§3). Returns whether the link
// was new.
func installLink(source, target *Context, r RId) bool {
	if source.linkMap[r] == nil {
		source.linkMap[r] = make(map[CId]struct{}, 4)
	}
	if _, ok := source.linkMap[r][target.id]; ok {
		return false
	}
	source.linkMap[r][target.id] = struct{}{}

	if target.predMap[r] == nil {
		target.predMap[r] = make(map[CId]struct{}, 4)
	}
	target.predMap[r][source.id] = struct{}{}
	return true
}
