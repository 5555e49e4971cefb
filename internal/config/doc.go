// Package config provides configuration structures and utilities for courtscan.
// It defines the listing URL, output destinations, browser settings, wait
// timeouts, settle delays and the CSS selectors that describe the court
// site's markup.
package config
