// Package metrics exposes application-level prometheus instruments.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics holds the domain instruments. A nil *Metrics is valid and
// records nothing, so services can treat it as optional.
type Metrics struct {
	registry *prometheus.Registry

	documentsCreated   *prometheus.CounterVec
	documentsCancelled *prometheus.CounterVec
	ledgerPostings     *prometheus.CounterVec
	stockMovements     *prometheus.CounterVec
	einvoicesGenerated prometheus.Counter
	salariesPaid       prometheus.Counter
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: registry,
		documentsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "billpro_documents_created_total",
			Help: "Billing documents created, by document kind.",
		}, []string{"kind"}),
		documentsCancelled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "billpro_documents_cancelled_total",
			Help: "Billing documents cancelled, by document kind.",
		}, []string{"kind"}),
		ledgerPostings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "billpro_ledger_postings_total",
			Help: "Party ledger rows appended, by transaction type.",
		}, []string{"transaction_type"}),
		stockMovements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "billpro_stock_movements_total",
			Help: "Stock movements recorded, by movement type.",
		}, []string{"movement_type"}),
		einvoicesGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "billpro_einvoices_generated_total",
			Help: "E-invoice JSON documents generated.",
		}),
		salariesPaid: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "billpro_salaries_paid_total",
			Help: "Salary slips paid out.",
		}),
	}
	registry.MustRegister(
		m.documentsCreated,
		m.documentsCancelled,
		m.ledgerPostings,
		m.stockMovements,
		m.einvoicesGenerated,
		m.salariesPaid,
	)
	return m
}

// Registry returns the registry backing the /metrics endpoint.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) RecordDocumentCreated(kind string) {
	if m == nil {
		return
	}
	m.documentsCreated.WithLabelValues(kind).Inc()
}

func (m *Metrics) RecordDocumentCancelled(kind string) {
	if m == nil {
		return
	}
	m.documentsCancelled.WithLabelValues(kind).Inc()
}

func (m *Metrics) RecordLedgerPosting(transactionType string) {
	if m == nil {
		return
	}
	m.ledgerPostings.WithLabelValues(transactionType).Inc()
}

func (m *Metrics) RecordStockMovement(movementType string) {
	if m == nil {
		return
	}
	m.stockMovements.WithLabelValues(movementType).Inc()
}

func (m *Metrics) RecordEInvoiceGenerated() {
	if m == nil {
		return
	}
	m.einvoicesGenerated.Inc()
}

func (m *Metrics) RecordSalaryPaid() {
	if m == nil {
		return
	}
	m.salariesPaid.Inc()
}
