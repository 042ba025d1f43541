// Parses flags and configures logging for the bakerd daemon.
//
// The daemon accepts the following flags:
//
//	-q, --quiet       Suppress informational output.
//	-v, --verbose     Enable verbose output.
//	-d, --debug       Enable debug output.
//	-s, --socket      Unix socket path.
//	    --containerd  Containerd socket address.
//	    --namespace   Containerd namespace.
//
// Flags override build-time defaults set via linker flags and may also be
// supplied through BAKERD_* environment variables. After parsing, the global
// logger is reconfigured to reflect the final level and verbosity before the
// selected command runs.
package cli
