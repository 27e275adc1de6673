// Package toolbar lets independently developed plugins contribute elements to
// the shared header toolbar.
//
// Contributors register a Contribution under a unique identifier in a
// Registry. On every render the Bar merges the live registry snapshot into the
// host's own header elements: each contribution is inserted at its requested
// position, resolved against the sequence as already grown by the
// contributions inserted before it in the same pass. Every contributed unit is
// wrapped in its own isolation boundary so a failing contributor renders its
// fallback instead of breaking the toolbar.
//
// Everything in this package runs on the Bubble Tea update/view loop and is
// not safe for concurrent use.
package toolbar
