// Package rates supplies currency exchange rates relative to USD.
//
// A Feed fetches the latest table over HTTP, retrying transient failures
// with exponential backoff. A Cache holds the most recent table for the unit
// converter and can refresh it periodically in the background. Static serves
// a fixed table and is only used when the fallback is explicitly enabled.
package rates
