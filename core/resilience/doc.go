// Package resilience guards calls to the remote feed service.
//
// Retry re-runs an operation with exponential backoff and jitter while its
// error is transient. Breaker wraps sony/gobreaker and stops calling a service
// whose recent failure ratio crossed a threshold, so a dead endpoint costs one
// fast error per cycle instead of a full retry budget.
package resilience
