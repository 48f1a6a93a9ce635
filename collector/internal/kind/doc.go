// Package kind defines the closed set of type classifications used by the
// collector.
package kind
