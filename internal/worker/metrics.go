package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals
var (
	metricPollsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "giftwatch",
		Subsystem: "monitor",
		Name:      "polls_total",
		Help:      "Poll attempts by outcome.",
	}, []string{"status"})

	metricFeedEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "giftwatch",
		Subsystem: "monitor",
		Name:      "feed_events_total",
		Help:      "Envelopes appended to the feed by event type.",
	}, []string{"event"})

	metricFeedWriteErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "giftwatch",
		Subsystem: "monitor",
		Name:      "feed_write_errors_total",
		Help:      "Failed feed appends.",
	})
)

const (
	pollStatusOK          = "ok"
	pollStatusError       = "error"
	pollStatusNotModified = "not_modified"
	pollStatusSkipped     = "skipped"
)
