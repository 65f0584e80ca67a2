// Package debugcheck wraps a document.Reader or document.Writer with
// the parent/child sequencing invariants spec §3.4/§9 ask every
// language binding to enforce somehow: a container's Next/NextKey (or
// a writer's Append/AppendKey/AppendValue) must not be called again
// while the element it most recently produced — specifically a
// Binary/String/Array/Map child, which holds a live position in the
// shared underlying stream — is still unfinished.
//
// C++'s original binds this check to the type system: a sub-reader
// borrows its parent and the compiler rejects a program that uses the
// parent while the borrow is alive. Go has no borrow checker, so here
// the same invariant is a runtime gate (spec §9 "a reference-counted
// or generation-counted guard is an acceptable substitute where the
// host language cannot express move-only borrowing statically") —
// every sub-reader/writer carries a *Gate that arms when it is
// created and disarms only once it is unambiguously finished: fully
// drained, or explicitly closed. A violation is reported through the
// goldfisherr.Misused taxonomy code, the same way the original's
// debug_check::library_missused exception reports it.
//
// Wrapping is opt-in and orthogonal to which codec produced the
// reader or writer: callers that trust their own traversal order can
// skip this package entirely and talk to package cbor or jsonstream
// directly, at the cost of undefined behavior (most likely a
// corrupted read position) instead of a clean error on misuse.
package debugcheck
