// Package harness drives repeated metadata benchmark iterations over a
// single cached path discovery.
package harness

// Result is the record emitted for one benchmark iteration. Durations
// are in seconds, rates in paths per second.
type Result struct {
	Timestamp    int64   `json:"timestamp"`
	PathsFound   int     `json:"paths_found"`
	DiscoverSecs float64 `json:"discover_secs"`
	DiscoverRate float64 `json:"discover_rate"`
	SerialSecs   float64 `json:"serial_secs"`
	SerialRate   float64 `json:"serial_rate"`
	ParallelSecs float64 `json:"parallel_secs"`
	ParallelRate float64 `json:"parallel_rate"`
}
