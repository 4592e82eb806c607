package events

import "github.com/atomicstack/tab-merge-control/internal/logging"

type MergeTracer struct{}

var Merge = MergeTracer{}

func (MergeTracer) Stage(from, to string) {
	logging.Trace("merge.stage", map[string]interface{}{"from": from, "to": to})
}

func (MergeTracer) StageRevert(reason string) {
	logging.Trace("merge.stage.revert", map[string]interface{}{"reason": reason})
}

func (MergeTracer) Execute(combined []int) {
	logging.Trace("merge.execute", map[string]interface{}{"tabs": combined})
}

func (MergeTracer) All(target int, windows []int) {
	logging.Trace("merge.all", map[string]interface{}{"target": target, "windows": windows})
}

func (MergeTracer) Split(tabs []int) {
	logging.Trace("merge.split", map[string]interface{}{"tabs": tabs})
}

func (MergeTracer) SplitWindow(windowID int, mode string) {
	logging.Trace("merge.split-window", map[string]interface{}{"window": windowID, "mode": mode})
}
