package events

import "github.com/atomicstack/tab-merge-control/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) BridgeListen(addr string) {
	logging.Trace("app.bridge.listen", map[string]interface{}{"addr": addr})
}

func (AppTracer) BridgeAttach(remote string) {
	logging.Trace("app.bridge.attach", map[string]interface{}{"remote": remote})
}

func (AppTracer) BridgeDetach(remote string, err error) {
	payload := map[string]interface{}{"remote": remote}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("app.bridge.detach", payload)
}
