package port

import "github.com/VictoriaMetrics/metrics"

// Counters are registered in the default metrics set and can be exposed
// with metrics.WritePrometheus.
var (
	readGuardsAcquired  = metrics.NewCounter(`dport_guards_acquired_total{mode="read"}`)
	writeGuardsAcquired = metrics.NewCounter(`dport_guards_acquired_total{mode="write"}`)
	guardsLocked        = metrics.NewCounter(`dport_guards_locked_total`)
	guardsEmpty         = metrics.NewCounter(`dport_guards_empty_total`)
	versionsBumped      = metrics.NewCounter(`dport_versions_bumped_total`)
	bindsTotal          = metrics.NewCounter(`dport_binds_total`)
	bindErrors          = metrics.NewCounter(`dport_bind_errors_total`)
)
