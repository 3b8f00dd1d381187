package reasoner

// superTrigger records that d was just added to S(c) and still needs its
// consequences propagated.
type superTrigger struct {
	c CId
	d CId
}

// linkTrigger records that the link c —r→ d was just installed and still
// needs its consequences propagated.
type linkTrigger struct {
	c CId
	r RId
	d CId
}

// Stats counts how much work the driver actually did, for observability.
type Stats struct {
	SuperItems int
	LinkItems  int
}

// Saturate runs the single-threaded EL saturation algorithm to a joint
// fixed point over the worklist of pending super-triggers and link-triggers,
// applying completion rules CR1–CR5. It freezes store against further
// mutation and returns one Context per concept plus a count of how many
// worklist items were processed.
//
// Saturate is a pure function of its inputs: the same store, numConcepts,
// and numRoles always yield the same least fixed point.
func Saturate(store *AxiomStore, numConcepts, numRoles int) ([]Context, Stats) {
	store.freeze()

	contexts := make([]Context, numConcepts)
	for c := CId(0); c < CId(numConcepts); c++ {
		contexts[c] = newContext(c, numRoles)
	}

	superWork := make([]superTrigger, 0, numConcepts*2)
	linkWork := make([]linkTrigger, 0, numConcepts)

	// Initialization: S(c) = {c, TOP} for every concept.
	for c := CId(0); c < CId(numConcepts); c++ {
		contexts[c].addSuper(c)
		superWork = append(superWork, superTrigger{c, c})
		if c != TOP {
			contexts[c].addSuper(TOP)
			superWork = append(superWork, superTrigger{c, TOP})
		}
	}

	var stats Stats

	for len(superWork) > 0 || len(linkWork) > 0 {
		for len(superWork) > 0 {
			item := superWork[len(superWork)-1]
			superWork = superWork[:len(superWork)-1]
			stats.SuperItems++

			superWork = applyCR1(store, contexts, item, superWork)
			superWork = applyCR2(store, contexts, item, superWork)
			linkWork = applyCR3(store, contexts, item, linkWork)
			superWork = applyCR4Backward(store, contexts, numRoles, item, superWork)
		}

		for len(linkWork) > 0 {
			item := linkWork[len(linkWork)-1]
			linkWork = linkWork[:len(linkWork)-1]
			stats.LinkItems++

			superWork = applyCR4Forward(store, contexts, item, superWork)
			superWork = applyCR5(contexts, item, superWork)
		}
	}

	return contexts, stats
}

// applyCR1: D ∈ S(c) triggers E ∈ S(c) for every D ⊑ E in the store.
func applyCR1(store *AxiomStore, contexts []Context, item superTrigger, work []superTrigger) []superTrigger {
	d := item.d
	if int(d) >= len(store.subToSups) {
		return work
	}
	ctx := &contexts[item.c]
	for _, e := range store.subToSups[d] {
		if ctx.addSuper(e) {
			work = append(work, superTrigger{item.c, e})
		}
	}
	return work
}

// applyCR2: D ∈ S(c) triggers E ∈ S(c) for every D ⊓ D2 ⊑ E with D2 ∈ S(c).
func applyCR2(store *AxiomStore, contexts []Context, item superTrigger, work []superTrigger) []superTrigger {
	d := item.d
	if int(d) >= len(store.conjIndex) || store.conjIndex[d] == nil {
		return work
	}
	ctx := &contexts[item.c]
	for d2, results := range store.conjIndex[d] {
		if !ctx.HasSuper(d2) {
			continue
		}
		for _, e := range results {
			if ctx.addSuper(e) {
				work = append(work, superTrigger{item.c, e})
			}
		}
	}
	return work
}

// applyCR3: D ∈ S(c) triggers link c —r→ F for every D ⊑ ∃r.F.
func applyCR3(store *AxiomStore, contexts []Context, item superTrigger, linkWork []linkTrigger) []linkTrigger {
	d := item.d
	if int(d) >= len(store.existRight) {
		return linkWork
	}
	source := &contexts[item.c]
	for _, rf := range store.existRight[d] {
		target := &contexts[rf.Fill]
		if installLink(source, target, rf.Role) {
			linkWork = append(linkWork, linkTrigger{item.c, rf.Role, rf.Fill})
		}
	}
	return linkWork
}

// applyCR4Backward: D ∈ S(c) — for every predecessor p with p —r→ c, fire
// ∃r.D ⊑ A against p's context.
func applyCR4Backward(store *AxiomStore, contexts []Context, numRoles int, item superTrigger, work []superTrigger) []superTrigger {
	d := item.d
	c := item.c
	for r := RId(0); r < RId(numRoles); r++ {
		if int(r) >= len(store.existLeft) || store.existLeft[r] == nil {
			continue
		}
		sups, ok := store.existLeft[r][d]
		if !ok {
			continue
		}
		preds := contexts[c].predMap
		if int(r) >= len(preds) || preds[r] == nil {
			continue
		}
		for pred := range preds[r] {
			pctx := &contexts[pred]
			for _, a := range sups {
				if pctx.addSuper(a) {
					work = append(work, superTrigger{pred, a})
				}
			}
		}
	}
	return work
}

// applyCR4Forward: new link c —r→ d — for every E ∈ S(d), fire ∃r.E ⊑ F
// against c's context.
func applyCR4Forward(store *AxiomStore, contexts []Context, item linkTrigger, work []superTrigger) []superTrigger {
	r := item.r
	if int(r) >= len(store.existLeft) || store.existLeft[r] == nil {
		return work
	}
	cctx := &contexts[item.c]
	for e := range contexts[item.d].superSet {
		sups, ok := store.existLeft[r][e]
		if !ok {
			continue
		}
		for _, f := range sups {
			if cctx.addSuper(f) {
				work = append(work, superTrigger{item.c, f})
			}
		}
	}
	return work
}

// applyCR5: new link c —r→ d — if BOTTOM ∈ S(d), propagate BOTTOM to S(c).
func applyCR5(contexts []Context, item linkTrigger, work []superTrigger) []superTrigger {
	if !contexts[item.d].HasSuper(BOTTOM) {
		return work
	}
	cctx := &contexts[item.c]
	if cctx.addSuper(BOTTOM) {
		work = append(work, superTrigger{item.c, BOTTOM})
	}
	return work
}
