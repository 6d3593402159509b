// Package metrics defines the scheduler and routine observability metrics.
// Everything registers on a dedicated registry served by the telemetry
// endpoint, keeping the default registry out of test processes.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// SchedulerTicks counts scheduler tick invocations, labeled by whether
	// the scheduler was enabled at the time.
	SchedulerTicks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "powerup_scheduler_ticks_total",
			Help: "Total number of scheduler tick invocations.",
		},
		[]string{"enabled"},
	)

	// CommandsScheduled counts commands accepted by the scheduler.
	CommandsScheduled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "powerup_commands_scheduled_total",
			Help: "Total number of commands handed to the scheduler.",
		},
	)

	// CommandsRetired counts retired commands by outcome (finished or
	// interrupted).
	CommandsRetired = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "powerup_commands_retired_total",
			Help: "Total number of commands retired by the scheduler.",
		},
		[]string{"outcome"},
	)

	// ResourceConflicts counts owners interrupted because a newly scheduled
	// command claimed one of their resources. A designed-for transition, but
	// one worth watching during a match.
	ResourceConflicts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "powerup_resource_conflicts_total",
			Help: "Total number of commands interrupted by a conflicting resource claim.",
		},
		[]string{"resource"},
	)

	// ActiveCommands tracks the number of commands currently registered.
	ActiveCommands = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "powerup_active_commands",
			Help: "Number of commands currently active in the scheduler.",
		},
	)
)

// Registry is the process registry exposed on the telemetry server.
var Registry = prometheus.NewRegistry()

func init() {
	Registry.MustRegister(
		SchedulerTicks,
		CommandsScheduled,
		CommandsRetired,
		ResourceConflicts,
		ActiveCommands,
	)
}
