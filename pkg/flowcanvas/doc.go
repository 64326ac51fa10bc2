// Package flowcanvas provides a minimal public façade for building, saving,
// exporting, and running flows without importing internal packages. It
// re-exports the core graph types for convenience and exposes a Runtime
// wired with the builtin component catalog, an in-memory flow store, and a
// WebSocket execution-engine client.
package flowcanvas
