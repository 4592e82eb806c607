package events

import "github.com/atomicstack/tab-merge-control/internal/logging"

type SelectionTracer struct{}

var Selection = SelectionTracer{}

func (SelectionTracer) Click(tabID int) {
	logging.Trace("selection.click", map[string]interface{}{"tab": tabID})
}

func (SelectionTracer) Toggle(tabID int, selected bool) {
	logging.Trace("selection.toggle", map[string]interface{}{"tab": tabID, "selected": selected})
}

func (SelectionTracer) WindowToggle(windowID int, added bool) {
	logging.Trace("selection.window-toggle", map[string]interface{}{"window": windowID, "added": added})
}

func (SelectionTracer) WindowUnion(windowID int) {
	logging.Trace("selection.window-union", map[string]interface{}{"window": windowID})
}

func (SelectionTracer) Marquee(count int, union bool) {
	logging.Trace("selection.marquee", map[string]interface{}{"count": count, "union": union})
}

func (SelectionTracer) Reset(stage string) {
	logging.Trace("selection.reset", map[string]interface{}{"stage": stage})
}
