// Package cli provides the imagedrop command-line client.
//
// It wires configuration, the HTTP transport, the thumbnail scaler, the
// terminal presenter and the file dropper into a services.Application, and
// exposes it through a cobra command tree:
//
//   - shell (default): interactive REPL; files are picked or dropped by path
//   - watch: every file copied into the drop directory is uploaded
//   - upload FILE...: upload the given files and exit
//   - search [PHRASE]: print matching images and exit
//
// Long-running loops (dropper, application, drop directory watcher) run under
// an errgroup and stop together.
package cli
