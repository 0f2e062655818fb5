// Package collector implements the Prometheus collector for meter readings.
//
// The collector never talks to the meter. Each scrape copies the latest
// smoothed reading from the shared gateway and the link status from the
// tracker, so scrapes cost one short lock each.
package collector
