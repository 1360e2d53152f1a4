package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CustomersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "crm_customers_created_total",
		Help: "Total number of customers created",
	})

	ProductsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "crm_products_created_total",
		Help: "Total number of products created",
	})

	OrdersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "crm_orders_created_total",
		Help: "Total number of orders created",
	})

	MutationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "crm_mutation_errors_total",
		Help: "Total number of mutations rejected by validation",
	}, []string{"mutation", "field"})

	BulkCustomersSkippedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "crm_bulk_customers_skipped_total",
		Help: "Total number of bulk-create items skipped",
	})

	LowStockRestockedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "crm_low_stock_restocked_total",
		Help: "Total number of products restocked by the low-stock mutation",
	})

	EventPublishFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "crm_event_publish_failures_total",
		Help: "Total number of domain events that failed to publish",
	}, []string{"event_type"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
