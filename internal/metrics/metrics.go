package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	BalanceQueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "balance_queries_total", Help: "Balance resolutions by result"},
		[]string{"result"},
	)
	SettlementsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "settlements_total", Help: "Settlement attempts by terminal outcome"},
		[]string{"outcome"},
	)
	SettlementStageFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "settlement_stage_failures_total", Help: "Settlement failures by stage"},
		[]string{"stage"},
	)
)

func init() {
	prometheus.MustRegister(BalanceQueriesTotal, SettlementsTotal, SettlementStageFailures)
}

func Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() { _ = srv.ListenAndServe() }()
	return srv
}
