//go:build !goldfish_nocheck

package debugcheck

// Enabled reports whether sequencing checks are compiled in. Build with
// -tags goldfish_nocheck to strip them entirely (see disabled.go): every
// check in this package becomes a compile-time-eliminated dead branch,
// and NewReader/NewWriter become the identity function, matching the
// original's release-build behavior (spec.md §4.7 "compile-time-
// elidable in release builds").
const Enabled = true
