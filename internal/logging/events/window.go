package events

import "github.com/atomicstack/tab-merge-control/internal/logging"

type WindowTracer struct{}

type TabTracer struct{}

var (
	Window = WindowTracer{}
	Tab    = TabTracer{}
)

func (WindowTracer) Activate(windowID int) {
	logging.Trace("window.activate", map[string]interface{}{"window": windowID})
}

func (WindowTracer) Reassign(windowID int) {
	logging.Trace("window.reassign", map[string]interface{}{"window": windowID})
}

func (WindowTracer) Create(seedTab, windowID int) {
	logging.Trace("window.create", map[string]interface{}{"seed": seedTab, "window": windowID})
}

func (WindowTracer) Focus(windowID int) {
	logging.Trace("window.focus", map[string]interface{}{"window": windowID})
}

func (TabTracer) Move(tabs []int, windowID int) {
	logging.Trace("tab.move", map[string]interface{}{"tabs": tabs, "window": windowID})
}

func (TabTracer) Close(tabID int) {
	logging.Trace("tab.close", map[string]interface{}{"tab": tabID})
}
