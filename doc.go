// Package pathkit parses, measures and simplifies SVG path geometry.
//
// Documents are parsed with [Parse] into a [Document], an ordered list of
// [Path] values. A path is a flat sequence of [Segment] values, possibly made
// of several sub-paths; [Subpaths] describes them as [Span] index ranges into
// that sequence. Shapes such as rectangles, circles and polygons are lowered
// to segments at parse time, and group transforms are composed into one
// transform per path. [Serialize] turns documents back into text, and
// [SerializeWithMap] additionally maps byte ranges of the output back to
// segments.
//
// # Operations
//
// All operations are pure functions: they return new values and never modify
// their inputs, and they are deterministic for a given input (and seed, where
// applicable). Degenerate input, such as zero-length segments or paths with
// too few anchors, never causes an error; operations return their input
// unchanged instead. Only malformed document text is an error.
//
//   - Measuring: [Length], [PointAt], [TangentAt], [NormalAt], [Sample],
//     [SplitAt], [BoundingBox]
//   - Healing, which removes the least important anchors one at a time:
//     [Importance], [HealOnce], [HealMultiple], [OptimalHealCount],
//     [AnalyzePoints]
//   - Simplification, which straightens, reduces and refits sub-paths:
//     [Simplify], [SimplifyWith]
//   - Health scoring: [ScoreSubpath], [ScorePath], [AnalyzeDocument], tunable
//     through [Policy]
//   - Tiling one path along another: [AlignToPath]
//   - Comparing filled areas: [Coverage]
//
// Operations can be chained with a [Pipeline] of [Transformer] values.
//
// # Coordinates
//
// Coordinates use SVG's convention: y grows downwards, so that positive
// angles rotate clockwise on screen. Normals are tangents rotated by +90°.
//
// # Logging
//
// The package logs nothing by default. Use [SetLogger] to receive warnings
// about recovered input problems and debug statistics.
package pathkit
