package main

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	connectedClients = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "chat_connected_clients",
		Help: "Number of clients currently registered.",
	})
	messagesBroadcast = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "chat_broadcasts_total",
		Help: "Number of room broadcasts performed.",
	})
	roomsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "chat_rooms_created_total",
		Help: "Number of rooms created.",
	})
)

func init() {
	prometheus.MustRegister(connectedClients, messagesBroadcast, roomsCreated)
}

func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
