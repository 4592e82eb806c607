package merge

import (
	"github.com/atomicstack/tab-merge-control/internal/logging/events"
)

// Stage tracks progress through the staged merge flow.
type Stage int

const (
	StageIdle Stage = iota
	StageSourceStaged
	StageTargetStaged
)

func (s Stage) String() string {
	switch s {
	case StageSourceStaged:
		return "source-staged"
	case StageTargetStaged:
		return "target-staged"
	default:
		return "idle"
	}
}

// Colour identifies which selection set a tab belongs to, for rendering.
type Colour int

const (
	ColourNone Colour = iota
	ColourCurrent
	ColourSource
	ColourTarget
)

// Selection holds the three tab sets of the staged merge flow. Current is
// the working set the user edits; Source and Target are frozen snapshots
// captured by Advance.
type Selection struct {
	current *orderedSet
	source  *orderedSet
	target  *orderedSet
	stage   Stage
	tracer  events.SelectionTracer
}

func NewSelection() *Selection {
	return &Selection{
		current: newOrderedSet(),
		source:  newOrderedSet(),
		target:  newOrderedSet(),
		tracer:  events.Selection,
	}
}

func (s *Selection) Stage() Stage { return s.stage }

func (s *Selection) Current() []int { return s.current.values() }
func (s *Selection) Source() []int  { return s.source.values() }
func (s *Selection) Target() []int  { return s.target.values() }

// Staged reports whether the tab sits in the source or target set.
func (s *Selection) Staged(id int) bool {
	return s.source.has(id) || s.target.has(id)
}

// ClickTab makes the clicked tab the sole member of Current. Clicks on a
// staged tab are ignored so source and target picks stay frozen.
func (s *Selection) ClickTab(id int) {
	if s.Staged(id) {
		return
	}
	s.current.clear()
	s.current.add(id)
	s.tracer.Click(id)
}

// ToggleTab flips the tab's membership in Current.
func (s *Selection) ToggleTab(id int) {
	if s.current.remove(id) {
		s.tracer.Toggle(id, false)
		return
	}
	s.current.add(id)
	s.tracer.Toggle(id, true)
}

// ToggleWindow selects every given tab when any of them is unselected,
// and deselects them all otherwise. Returns true when tabs were added.
func (s *Selection) ToggleWindow(windowID int, tabIDs []int) bool {
	all := len(tabIDs) > 0
	for _, id := range tabIDs {
		if !s.current.has(id) {
			all = false
			break
		}
	}
	if all {
		for _, id := range tabIDs {
			s.current.remove(id)
		}
		s.tracer.WindowToggle(windowID, false)
		return false
	}
	for _, id := range tabIDs {
		s.current.add(id)
	}
	s.tracer.WindowToggle(windowID, true)
	return true
}

// UnionWindow adds every given tab to Current without removing anything.
func (s *Selection) UnionWindow(windowID int, tabIDs []int) {
	for _, id := range tabIDs {
		s.current.add(id)
	}
	s.tracer.WindowUnion(windowID)
}

// ReplaceTabs makes the given tabs the entire Current set. Used when a
// marquee drag completes without the union modifier. Staged ids are
// skipped, like ClickTab.
func (s *Selection) ReplaceTabs(tabIDs []int) {
	s.current.clear()
	for _, id := range tabIDs {
		if s.Staged(id) {
			continue
		}
		s.current.add(id)
	}
	s.tracer.Marquee(s.current.len(), false)
}

// UnionTabs adds the given tabs to Current, skipping staged ids. Used for
// shift-modified marquee drags.
func (s *Selection) UnionTabs(tabIDs []int) {
	count := 0
	for _, id := range tabIDs {
		if s.Staged(id) {
			continue
		}
		s.current.add(id)
		count++
	}
	s.tracer.Marquee(count, true)
}

// AdvanceResult reports the stage reached by Advance. Combined is only
// populated when Execute is true: the source tabs followed by the target
// tabs, in selection order, duplicates preserved.
type AdvanceResult struct {
	Stage    Stage
	Execute  bool
	Combined []int
}

// Advance moves the staged merge machine one step. From idle it freezes
// Current as Source; from source-staged it freezes Current as Target; from
// target-staged it emits the combined tab list for execution. An empty
// Current yields a Notice and leaves the stage untouched.
func (s *Selection) Advance() (AdvanceResult, error) {
	switch s.stage {
	case StageIdle:
		if s.current.len() == 0 {
			return AdvanceResult{Stage: s.stage}, ErrNoTabs
		}
		s.source.adopt(s.current)
		s.stage = StageSourceStaged
	case StageSourceStaged:
		if s.current.len() == 0 {
			return AdvanceResult{Stage: s.stage}, ErrNoTargetTabs
		}
		s.target.adopt(s.current)
		s.stage = StageTargetStaged
	case StageTargetStaged:
		combined := append(s.source.values(), s.target.values()...)
		return AdvanceResult{Stage: s.stage, Execute: true, Combined: combined}, nil
	}
	return AdvanceResult{Stage: s.stage}, nil
}

// FinishMerge clears the staged sets and returns to idle. Called after a
// merge execution completes, whether it succeeded or not.
func (s *Selection) FinishMerge() {
	s.source.clear()
	s.target.clear()
	s.current.clear()
	s.stage = StageIdle
}

// Reset abandons all three sets and returns to idle.
func (s *Selection) Reset() {
	s.tracer.Reset(s.stage.String())
	s.current.clear()
	s.source.clear()
	s.target.clear()
	s.stage = StageIdle
}

// ClearCurrent empties the working set only.
func (s *Selection) ClearCurrent() {
	s.current.clear()
}

// ColourFor reports which set the tab renders with. Source wins over
// Target, which wins over Current, so a tab staged twice keeps its
// source colour.
func (s *Selection) ColourFor(id int) Colour {
	switch {
	case s.source.has(id):
		return ColourSource
	case s.target.has(id):
		return ColourTarget
	case s.current.has(id):
		return ColourCurrent
	default:
		return ColourNone
	}
}

// WindowColour reports the colour a window header renders with: the set
// that wholly contains the window's tabs, with the same precedence as
// ColourFor. Empty windows render uncoloured.
func (s *Selection) WindowColour(tabIDs []int) Colour {
	if len(tabIDs) == 0 {
		return ColourNone
	}
	for _, set := range []struct {
		set    *orderedSet
		colour Colour
	}{
		{s.source, ColourSource},
		{s.target, ColourTarget},
		{s.current, ColourCurrent},
	} {
		all := true
		for _, id := range tabIDs {
			if !set.set.has(id) {
				all = false
				break
			}
		}
		if all {
			return set.colour
		}
	}
	return ColourNone
}

// PruneCurrent drops Current members that no longer exist. Source and
// Target are deliberately left alone so an in-flight staged merge survives
// refreshes; stale ids there surface as host errors at execution time.
func (s *Selection) PruneCurrent(alive map[int]bool) {
	for _, id := range s.current.values() {
		if !alive[id] {
			s.current.remove(id)
		}
	}
}
