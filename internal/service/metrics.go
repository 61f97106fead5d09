package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	linksCreatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "linker_links_created_total",
		Help: "Links created, by kind.",
	}, []string{"kind"})

	resolvesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "linker_resolves_total",
		Help: "Link lookups, by outcome (found, gone, error).",
	}, []string{"outcome"})

	gatewayDecisionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "linker_gateway_decisions_total",
		Help: "Access gateway decisions, by result.",
	}, []string{"decision"})

	revocationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "linker_revocations_total",
		Help: "Revocation attempts, by outcome (revoked, missing, forbidden, error).",
	}, []string{"outcome"})
)
