package metrics_test

import (
	"testing"

	metrics "github.com/okian/laddersim/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManager(t *testing.T) {
	Convey("Given metrics manager construction", t, func() {
		Convey("When creating a manager on a fresh registry", func() {
			registry := prometheus.NewRegistry()
			m := metrics.NewManager(metrics.WithPrometheusRegistry(registry))

			Convey("Then all collectors register without conflict", func() {
				So(m, ShouldNotBeNil)

				families, err := registry.Gather()
				So(err, ShouldBeNil)
				So(families, ShouldNotBeNil)
			})
		})

		Convey("When customizing namespace and buckets", func() {
			registry := prometheus.NewRegistry()
			m := metrics.NewManager(
				metrics.WithPrometheusRegistry(registry),
				metrics.WithNamespace("custom"),
				metrics.WithSubsystem("engine"),
				metrics.WithHistogramBuckets([]float64{1, 10, 100}),
			)

			Convey("Then the manager is created", func() {
				So(m, ShouldNotBeNil)
			})
		})
	})
}

func TestGlobalHelpers(t *testing.T) {
	Convey("Given the global metrics helpers", t, func() {
		Convey("When recording simulation events", func() {
			Convey("Then no helper panics", func() {
				So(metrics.RecordContestResolved, ShouldNotPanic)
				So(metrics.RecordDrawResolved, ShouldNotPanic)
				So(metrics.RecordDecayApplication, ShouldNotPanic)
				So(metrics.RecordRunSubmitted, ShouldNotPanic)
				So(metrics.RecordRunCompleted, ShouldNotPanic)
				So(metrics.RecordRunFailed, ShouldNotPanic)
				So(func() { metrics.RecordRunDuration(12.5) }, ShouldNotPanic)
			})
		})

		Convey("When updating gauges", func() {
			Convey("Then no helper panics", func() {
				So(func() { metrics.UpdateRosterSize(16) }, ShouldNotPanic)
				So(func() { metrics.UpdateQueueSize(3) }, ShouldNotPanic)
				So(func() { metrics.UpdateQueueCapacity(1024) }, ShouldNotPanic)
				So(func() { metrics.UpdateQueueUtilization(0.25) }, ShouldNotPanic)
				So(func() { metrics.UpdateWorkerActiveCount(2) }, ShouldNotPanic)
			})
		})

		Convey("When recording HTTP and component errors", func() {
			Convey("Then no helper panics", func() {
				So(func() { metrics.RecordHTTPRequest("runs", "POST", "202") }, ShouldNotPanic)
				So(func() { metrics.RecordHTTPRequestDuration("runs", "POST", "202", 3.5) }, ShouldNotPanic)
				So(func() { metrics.RecordQueueEnqueue() }, ShouldNotPanic)
				So(func() { metrics.RecordQueueDequeue() }, ShouldNotPanic)
				So(func() { metrics.RecordQueueEnqueueError() }, ShouldNotPanic)
				So(func() { metrics.RecordErrorByComponent("queue", "queue_full") }, ShouldNotPanic)
			})
		})

		Convey("When gathering from the shared registry", func() {
			metrics.RecordContestResolved()

			families, err := metrics.GetRegistry().Gather()

			Convey("Then the simulation collectors are exposed", func() {
				So(err, ShouldBeNil)

				found := false
				for _, f := range families {
					if f.GetName() == "laddersim_sim_contests_resolved_total" {
						found = true
					}
				}
				So(found, ShouldBeTrue)
			})
		})
	})
}
