// Package main implements sharkmon, a web gateway for a Shark 100S class
// power meter.
//
// sharkmon polls the meter over Modbus TCP once per second, smooths power,
// voltage and frequency with an exponential moving average and serves the
// latest values as JSON on /power (port 8081 by default), link status on
// /status, Prometheus metrics on /metrics and a static page on /.
package main
