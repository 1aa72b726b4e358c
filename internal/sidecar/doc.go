// Package sidecar launches the bundled backend executable and exposes its
// output as an asynchronous event stream.
//
// The launcher resolves the platform-specific binary next to the shell
// executable, spawns it with piped stdout/stderr, and returns an exclusively
// owned Handle plus a channel of Events. The channel carries one event per
// output line, any pipe I/O errors, and a final termination notice; it is
// closed only after both pipes are drained and the process has been reaped.
//
// Ownership model:
//   - The Handle is meant to be stored in a supervisor immediately after a
//     successful spawn, before any events are consumed, so a shutdown request
//     arriving mid-startup can already terminate the process.
//   - Kill is fire-and-forget; reaping always happens on the launch monitor
//     goroutine regardless of who initiated the kill.
package sidecar
