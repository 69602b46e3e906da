package dispatch

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	jobsEnqueued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dispatch_jobs_enqueued_total",
		Help: "Total number of dispatch jobs placed on the queue",
	})

	jobsSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dispatch_jobs_sent_total",
		Help: "Total number of emails delivered to the mail transport",
	})

	jobsRetried = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dispatch_jobs_retried_total",
		Help: "Total number of delivery attempts rescheduled after a transport failure",
	})

	jobsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dispatch_jobs_dropped_total",
		Help: "Total number of jobs dropped after render failure or exhausted retries",
	})
)
