// Package delta computes signed probability changes between snapshots and
// classifies them by magnitude.
//
// Classification is a pure function of |delta|:
//   - |delta| > major threshold           → Major
//   - notable <= |delta| <= major         → Notable
//   - |delta| < notable threshold         → Stable
//
// Band lower bounds are inclusive. A market with no prior snapshot has no
// delta and classifies as Stable.
package delta
