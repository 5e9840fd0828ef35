package metrics

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	TrendingRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "olivia_trending_requests_total",
			Help: "Trending aggregations served, by window used and whether any stage failed",
		},
		[]string{"window", "degraded"},
	)

	TrendingStageFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "olivia_trending_stage_failures_total",
			Help: "Swallowed query failures inside the trending aggregator",
		},
		[]string{"stage"}, // events_24h|events_7d|outfits
	)

	PlannerRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "olivia_planner_runs_total",
			Help: "Weekly plan generations",
		},
		[]string{"result"}, // ok|empty_wardrobe|error
	)

	PlannerFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "olivia_planner_fallbacks_total",
			Help: "Planner constraint relaxations",
		},
		[]string{"kind"}, // release_used|full_pool
	)

	OutfitSaves = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "olivia_outfit_draft_saves_total",
			Help: "Weekly draft save attempts",
		},
		[]string{"result"},
	)

	ChatMessages = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "olivia_chat_messages_total",
			Help: "Chat proxy requests by outcome",
		},
		[]string{"outcome"}, // ok|limit_reached|llm_error|not_configured
	)

	LLMLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "olivia_llm_request_duration_seconds",
			Help:    "Latency of outbound LLM calls",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider"},
	)

	LLMBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "olivia_llm_circuit_breaker_state",
			Help: "0=closed 1=half-open 2=open",
		},
		[]string{"name"},
	)
)

// Handler exposes the default registry on an echo route.
func Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.Handler())
}
