/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package channel

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"jinr.ru/greenlab/go-mcs/pkg/channel/ifc"
	"jinr.ru/greenlab/go-mcs/pkg/reg"
)

// Instrumented counts and times register operations of the wrapped channel
type Instrumented struct {
	ifc.ControlChannel
	ops     *prometheus.CounterVec
	errs    *prometheus.CounterVec
	latency *prometheus.HistogramVec
}

var _ ifc.ControlChannel = &Instrumented{}

func NewInstrumented(ch ifc.ControlChannel, registerer prometheus.Registerer) (*Instrumented, error) {
	ops := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mcs_register_ops_total",
		Help: "Register operations issued through the control channel.",
	}, []string{"op"})
	errs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mcs_register_errors_total",
		Help: "Register operations that failed.",
	}, []string{"op"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "mcs_register_latency_seconds",
		Help:    "Duration of register operations.",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
	}, []string{"op"})
	for _, c := range []prometheus.Collector{ops, errs, latency} {
		if err := registerer.Register(c); err != nil {
			return nil, err
		}
	}
	return &Instrumented{
		ControlChannel: ch,
		ops:            ops,
		errs:           errs,
		latency:        latency,
	}, nil
}

func (i *Instrumented) observe(op string, start time.Time, err error) {
	i.ops.WithLabelValues(op).Inc()
	i.latency.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		i.errs.WithLabelValues(op).Inc()
	}
}

func (i *Instrumented) Get(name string, count int) (*reg.Value, error) {
	start := time.Now()
	value, err := i.ControlChannel.Get(name, count)
	i.observe(OpGet, start, err)
	return value, err
}

func (i *Instrumented) Put(name string, value *reg.Value, wait bool) error {
	start := time.Now()
	err := i.ControlChannel.Put(name, value, wait)
	i.observe(OpPut, start, err)
	return err
}
