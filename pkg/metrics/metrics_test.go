package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with a private registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created with default naming", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "mergington")
				So(manager.subsystem, ShouldEqual, "activities")
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("school"),
				WithSubsystem("clubs"),
				WithHistogramBuckets([]float64{1, 2, 3}),
				WithConstLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)
			manager.activityCount.Set(9)

			Convey("Then collectors should carry the custom name and labels", func() {
				families, err := registry.Gather()
				So(err, ShouldBeNil)

				var found bool
				for _, mf := range families {
					if mf.GetName() == "school_clubs_catalog_size" {
						found = true
						So(mf.GetMetric()[0].GetGauge().GetValue(), ShouldEqual, 9)
						So(mf.GetMetric()[0].GetLabel()[0].GetName(), ShouldEqual, "env")
					}
				}
				So(found, ShouldBeTrue)
			})
		})

		Convey("When ignoring empty option values", func() {
			manager := NewManager(
				WithNamespace(""),
				WithSubsystem(""),
				WithHistogramBuckets(nil),
				WithPrometheusRegistry(prometheus.NewRegistry()),
			)

			Convey("Then defaults should be kept", func() {
				So(manager.namespace, ShouldEqual, "mergington")
				So(manager.subsystem, ShouldEqual, "activities")
				So(manager.histogramBuckets, ShouldNotBeEmpty)
			})
		})
	})
}

func TestSignupMetrics(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording signups", func() {
			before := testutil.ToFloat64(globalManager.signups.WithLabelValues("Chess Club", OutcomeOK))
			RecordSignup("Chess Club", OutcomeOK)
			RecordSignup("Chess Club", OutcomeOK)
			RecordSignup("Chess Club", OutcomeDuplicate)

			Convey("Then the counter should increase per outcome", func() {
				after := testutil.ToFloat64(globalManager.signups.WithLabelValues("Chess Club", OutcomeOK))
				So(after-before, ShouldEqual, 2)
			})
		})

		Convey("When recording withdrawals", func() {
			before := testutil.ToFloat64(globalManager.withdrawals.WithLabelValues(UnknownActivity, OutcomeNotFound))
			RecordWithdrawal(UnknownActivity, OutcomeNotFound)

			Convey("Then the counter should increase", func() {
				after := testutil.ToFloat64(globalManager.withdrawals.WithLabelValues(UnknownActivity, OutcomeNotFound))
				So(after-before, ShouldEqual, 1)
			})
		})

		Convey("When updating participant gauges", func() {
			UpdateParticipants("Art Studio", 6, 15)
			UpdateParticipants("Ghost Club", 1, 0)

			Convey("Then participants and utilization should be set", func() {
				So(testutil.ToFloat64(globalManager.participants.WithLabelValues("Art Studio")), ShouldEqual, 6)
				So(testutil.ToFloat64(globalManager.utilization.WithLabelValues("Art Studio")), ShouldAlmostEqual, 0.4)
			})

			Convey("And a zero capacity should still record participants", func() {
				So(testutil.ToFloat64(globalManager.participants.WithLabelValues("Ghost Club")), ShouldEqual, 1)
			})
		})

		Convey("When updating catalog gauges", func() {
			UpdateCatalogSize(9)
			UpdateTotalParticipants(21)

			Convey("Then the gauges should hold the values", func() {
				So(testutil.ToFloat64(globalManager.activityCount), ShouldEqual, 9)
				So(testutil.ToFloat64(globalManager.participantTotal), ShouldEqual, 21)
			})
		})
	})
}

func TestOperationalMetrics(t *testing.T) {
	Convey("Given operational metric helpers", t, func() {
		Convey("Then recording should not panic", func() {
			So(func() {
				RecordStoreLatency("enroll", 0.02)
				RecordHTTPRequest("signup", "POST", "200")
				RecordHTTPRequestDuration("signup", "POST", "200", 1.5)
				RecordErrorByType("not_found", "medium")
				RecordErrorByEndpoint("signup", "POST", "not_found")
				RecordErrorLatency("http", "not_found", 0.5)
				UpdateSystemMemoryUsage(1 << 20)
				UpdateSystemGoroutineCount(12)
				RecordSystemGCPauseTime(0.3)
			}, ShouldNotPanic)
		})

		Convey("And the custom registry should expose them", func() {
			RecordHTTPRequest("activities", "GET", "200")
			expected := `
# HELP mergington_activities_catalog_size Number of activities in the catalog
# TYPE mergington_activities_catalog_size gauge
mergington_activities_catalog_size 9
`
			UpdateCatalogSize(9)
			err := testutil.GatherAndCompare(GetRegistry(), strings.NewReader(expected), "mergington_activities_catalog_size")
			So(err, ShouldBeNil)
		})
	})
}
