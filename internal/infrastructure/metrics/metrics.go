// Package metrics exposes run and persistence counters via expvar.
package metrics

import (
	"expvar"
)

// Run metrics.
var (
	runsStarted   = new(expvar.Int)
	runsCompleted = new(expvar.Int)
	runsFailed    = expvar.NewMap("flowcanvas_runs_failed_total")
	eventsFolded  = expvar.NewMap("flowcanvas_stream_events_total")
)

// Flow persistence metrics.
var (
	flowsSaved  = new(expvar.Int)
	flowsLoaded = new(expvar.Int)
)

func init() {
	expvar.Publish("flowcanvas_runs_started_total", runsStarted)
	expvar.Publish("flowcanvas_runs_completed_total", runsCompleted)
	expvar.Publish("flowcanvas_flows_saved_total", flowsSaved)
	expvar.Publish("flowcanvas_flows_loaded_total", flowsLoaded)
}

// Run helpers
func RunStarted()            { runsStarted.Add(1) }
func RunCompleted()          { runsCompleted.Add(1) }
func RunFailed(kind string)  { runsFailed.Add(kind, 1) }
func EventFolded(typ string) { eventsFolded.Add(typ, 1) }

// Persistence helpers
func FlowSaved()  { flowsSaved.Add(1) }
func FlowLoaded() { flowsLoaded.Add(1) }
