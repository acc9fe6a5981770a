package daemon

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.trai.ch/dexopt/internal/core/domain"
	"go.trai.ch/dexopt/internal/core/ports"
)

// Metrics holds the daemon's Prometheus collectors on a private registry.
type Metrics struct {
	registry     *prometheus.Registry
	transactions *prometheus.CounterVec
	commands     *prometheus.CounterVec
}

// NewMetrics creates the collectors. modules reports the number of registered
// modules and idle reports the seconds left before the inactivity shutdown.
func NewMetrics(modules ports.ModuleRegistry, idle func() float64) *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	m := &Metrics{
		registry: reg,
		transactions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dexopt_transactions_total",
			Help: "Transactions handled by the package service, by transaction, mode and result",
		}, []string{"service", "transaction", "mode", "result"}),
		commands: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dexopt_shell_commands_total",
			Help: "Shell commands run by the package service, by command and result",
		}, []string{"command", "result"}),
	}

	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "dexopt_registered_modules",
		Help: "Secondary modules currently registered",
	}, func() float64 {
		all, err := modules.All()
		if err != nil {
			return 0
		}
		return float64(len(all))
	})
	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "dexopt_idle_remaining_seconds",
		Help: "Seconds until the daemon shuts down for inactivity",
	}, idle)

	return m
}

// ObserveTransaction counts one handled transaction.
func (m *Metrics) ObserveTransaction(service string, code uint32, oneway bool, err error) {
	mode := "sync"
	if oneway {
		mode = "oneway"
	}
	m.transactions.WithLabelValues(service, transactionName(code), mode, result(err == nil)).Inc()
}

// ObserveCommand counts one shell command.
func (m *Metrics) ObserveCommand(command string, code int32) {
	if command == "" {
		command = "none"
	}
	m.commands.WithLabelValues(command, result(code == 0)).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func transactionName(code uint32) string {
	switch code {
	case domain.TransactionRegisterDexModule:
		return "registerDexModule"
	case domain.ShellCommandTransaction:
		return "shellCommand"
	case domain.PingTransaction:
		return "ping"
	default:
		return strconv.FormatUint(uint64(code), 10)
	}
}

func result(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}
