// Package metrics defines all custom Prometheus metrics for roomtrack. It is
// the single source of truth for metric names, labels, and help strings.
// Everything is registered with the default registry via promauto at init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "roomtrack"

// RoomDetailRequestsTotal counts room-detail fetches by outcome.
// Label:
//   - result: "ok", "unauthorized", "forbidden", "not_found", "error"
var RoomDetailRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "room_detail_requests_total",
		Help:      "Total number of room detail requests, labelled by outcome.",
	},
	[]string{"result"},
)

// RoomsCreatedTotal counts newly created rooms.
var RoomsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rooms_created_total",
		Help:      "Total number of rooms created.",
	},
)

// RoomJoinsTotal counts successful room joins.
var RoomJoinsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "room_joins_total",
		Help:      "Total number of successful room joins.",
	},
)

// ActivityAcceptedTotal counts activity signals accepted for processing.
// Label:
//   - source: the client-reported source ("session_timer", "room_view", "heartbeat")
var ActivityAcceptedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_accepted_total",
		Help:      "Total number of room activity signals accepted for processing.",
	},
	[]string{"source"},
)

// ActivityErrorsTotal counts activity events that failed processing.
// Label:
//   - reason: short description of the failure ("room_not_found", "not_member", "update_failed")
var ActivityErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_errors_total",
		Help:      "Total number of room activity events that failed processing.",
	},
	[]string{"reason"},
)
