// Command shell is the desktop host process for the backend sidecar.
//
// On startup it spawns the bundled backend binary, relays its output to the
// shell's logs, and waits for it to answer HTTP. On SIGINT/SIGTERM (the host
// framework's close request) it kills the backend without waiting for exit
// confirmation and shuts down.
//
// Configuration is environment-only; see internal/infrastructure/config.
package main
