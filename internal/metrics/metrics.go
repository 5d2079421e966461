package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	submissionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "banners_submissions_total",
		Help: "Total banner submissions processed",
	})

	reviewRendersTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "banners_review_renders_total",
		Help: "Review pages rendered, by action and actor",
	}, []string{"action", "actor"})

	reviewDispatchesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "banners_review_dispatches_total",
		Help: "Review actions dispatched, by action and actor",
	}, []string{"action", "actor"})

	emailSendsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "banners_email_sends_total",
		Help: "Email send attempts, by kind and outcome",
	}, []string{"kind", "outcome"})
)

var registerOnce sync.Once

// Init registers the collectors. Must be called once at startup.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			submissionsTotal,
			reviewRendersTotal,
			reviewDispatchesTotal,
			emailSendsTotal,
		)
	})
}

// RecordSubmission counts a processed banner submission.
func RecordSubmission() {
	submissionsTotal.Inc()
}

// RecordReviewRender counts a rendered review page.
func RecordReviewRender(action, actor string) {
	reviewRendersTotal.WithLabelValues(action, actor).Inc()
}

// RecordReviewDispatch counts a dispatched review action.
func RecordReviewDispatch(action, actor string) {
	reviewDispatchesTotal.WithLabelValues(action, actor).Inc()
}

// RecordEmailSend counts an email send attempt. kind is the message type
// (applicant, fyi, notification, confirmation); outcome is "ok" or "error".
func RecordEmailSend(kind string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	emailSendsTotal.WithLabelValues(kind, outcome).Inc()
}
