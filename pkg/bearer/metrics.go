// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package bearer

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts the challenges sent by a Responder.
type Metrics struct {
	challenges *prometheus.CounterVec
}

// NewMetrics creates the challenge collectors and registers them with reg.
// It panics if registration fails, like promauto.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		challenges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bearer",
			Name:      "challenges_total",
			Help:      "Number of bearer authentication error responses sent.",
		}, []string{"kind", "status"}),
	}
	reg.MustRegister(m.challenges)
	return m
}

// observe is a no-op on a nil receiver so Responders without metrics need no
// special casing.
func (m *Metrics) observe(kind string, status int) {
	if m == nil {
		return
	}
	m.challenges.WithLabelValues(kind, strconv.Itoa(status)).Inc()
}
