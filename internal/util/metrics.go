package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ProductViewsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "product_views_total",
		Help: "Total number of product page views tracked",
	})

	WhatsAppClicksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "whatsapp_clicks_total",
		Help: "Total number of WhatsApp contact link clicks",
	})

	ReservationsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reservations_created_total",
		Help: "Total number of stock reservations created",
	})

	ReservationsFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reservations_failed_total",
		Help: "Total number of failed reservation attempts",
	}, []string{"reason"})

	ReservationsCancelledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reservations_cancelled_total",
		Help: "Total number of cancelled reservations",
	})

	ReservationsExpiredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reservations_expired_total",
		Help: "Total number of reservations released by the expiry worker",
	})

	DiscountValidationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "discount_validations_total",
		Help: "Total number of discount code validations",
	}, []string{"result"})

	CatalogQueryLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "catalog_query_latency_seconds",
		Help:    "Latency of catalog listing queries",
		Buckets: prometheus.DefBuckets,
	})

	StockReserveLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "stock_reserve_latency_seconds",
		Help:    "Latency of per-size stock reservation operations",
		Buckets: prometheus.DefBuckets,
	})

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
