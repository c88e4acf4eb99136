// Package monitor implements the clipboard sampling loop.
//
// The monitor is the only writer to the history store. Each tick it reads
// the clipboard and appends the value when it differs from the last value it
// recorded or saw at startup:
//
//	Idle{last} --tick, sample == last--> Idle{last}
//	Idle{last} --tick, sample != last--> Append(sample) --ok--> Idle{sample}
//	                                                   --err-> stop, return error
//
// Absent samples (failed or timed-out reads) are ignored and leave last
// unchanged. An empty string is an ordinary value: it is recorded when last
// is non-empty. The value on the clipboard at startup seeds last and is never
// recorded.
//
// Transient write failures (lock contention) are retried with exponential
// backoff up to Config.MaxRetries. Structural failures stop the loop at once.
// Run returns ctx.Err() when its context is cancelled.
package monitor
