// Package theme resolves the dark and light syntax-highlighting themes
// handed to the presentation host at startup. Theme definitions are
// located relative to an explicitly injected Base, either a directory on
// disk or the definitions bundled into the binary, and loaded through a
// Loader selected from the host's capabilities.
package theme
