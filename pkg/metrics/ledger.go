package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// LedgerMetrics records payment and deposit activity on the ledger.
type LedgerMetrics struct {
	payments       *prometheus.CounterVec
	deposits       *prometheus.CounterVec
	paymentAmounts prometheus.Histogram
	depositAmounts prometheus.Histogram
}

// amounts are in cents; buckets cover a dollar up to ten thousand dollars
var amountBuckets = prometheus.ExponentialBuckets(100, 10, 5)

// NewLedgerMetrics registers the ledger metrics on the provided registerer.
func NewLedgerMetrics(reg prometheus.Registerer) *LedgerMetrics {
	if reg == nil {
		return &LedgerMetrics{}
	}
	payments := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_payments_total",
		Help: "Job payment attempts by outcome.",
	}, []string{"outcome"})
	deposits := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_deposits_total",
		Help: "Balance deposit attempts by outcome.",
	}, []string{"outcome"})
	paymentAmounts := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "ledger_payment_amount_cents",
		Help:    "Settled job payment amounts in cents.",
		Buckets: amountBuckets,
	})
	depositAmounts := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "ledger_deposit_amount_cents",
		Help:    "Accepted deposit amounts in cents.",
		Buckets: amountBuckets,
	})
	reg.MustRegister(payments, deposits, paymentAmounts, depositAmounts)
	return &LedgerMetrics{
		payments:       payments,
		deposits:       deposits,
		paymentAmounts: paymentAmounts,
		depositAmounts: depositAmounts,
	}
}

// IncPayment increments the payment counter for the given outcome.
func (m *LedgerMetrics) IncPayment(outcome string) {
	if m == nil || m.payments == nil {
		return
	}
	m.payments.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// ObservePaymentAmount records the settled payment amount.
func (m *LedgerMetrics) ObservePaymentAmount(amountCents int64) {
	if m == nil || m.paymentAmounts == nil {
		return
	}
	m.paymentAmounts.Observe(float64(amountCents))
}

// IncDeposit increments the deposit counter for the given outcome.
func (m *LedgerMetrics) IncDeposit(outcome string) {
	if m == nil || m.deposits == nil {
		return
	}
	m.deposits.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// ObserveDepositAmount records the accepted deposit amount.
func (m *LedgerMetrics) ObserveDepositAmount(amountCents int64) {
	if m == nil || m.depositAmounts == nil {
		return
	}
	m.depositAmounts.Observe(float64(amountCents))
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
