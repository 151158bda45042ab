// Package reconciler converges images and builder containers toward a build specification.
package reconciler

// Options controls one reconciliation call.
type Options struct {
	// Force rebuilds images that already exist, or reruns builders that already succeeded.
	Force bool
	// Jobs bounds the number of items reconciled concurrently. Zero means one per CPU.
	Jobs int
}

// defaultTailLines is the number of trailing log lines attached to run failures.
const defaultTailLines = 20
