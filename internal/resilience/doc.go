// Package resilience provides fault tolerance patterns for calls to local and
// remote dependencies.
//
// Commands are never retried automatically. The only pattern in use is a
// circuit breaker in front of the local speech engine, so a stopped engine
// fails fast instead of stalling every synthesize request until timeout.
//
// Usage Example:
//
//	cb := circuitbreaker.New(circuitbreaker.SpeechEngineConfig())
//	result, err := cb.Execute(func() (interface{}, error) {
//	    return callEngine()
//	})
package resilience
