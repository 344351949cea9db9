// Package recommend wraps the recommendation service HTTP API.
//
// The client uploads transaction CSVs, asks for product and user
// recommendations and fetches the sales forecast. Result payloads are decoded
// into ordered resulttree values so the UI renders keys in the order the
// service sent them. All calls share one circuit breaker.
package recommend
