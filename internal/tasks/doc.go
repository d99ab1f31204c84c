// Package tasks orchestrates the per-file lyrics sync pipeline and the batch run around it.
//
// # Core Operations
//
// The [Engine] exposes two operations:
//
//  1. [Engine.SyncFile] : one audio file end to end
//     - Skips when a non-empty .lrc sibling already exists (unless forced)
//     - Resolves (artist, title) identity via [metadata.Resolver]
//     - Queries the lyrics service through the [Searcher] interface
//     - Selects a candidate with [match.Select]
//     - Writes the chosen lyrics verbatim next to the source file
//
//  2. [Engine.Run] : a whole directory tree
//     - Walks the root collecting audio files by extension
//     - Invokes SyncFile sequentially, pacing service calls with a rate limiter
//     - Aggregates one [Outcome] per file into [RunResult] statistics
//
// # Error Policy
//
// No single file's failure halts a batch: lookup and write errors become
// FAILED outcomes and the run continues. Only setup-level failures (an
// unusable root directory) abort [Engine.Run].
//
// # Progress Reporting
//
// All operations use non-blocking channel sends for progress updates so a
// slow or absent consumer never stalls the pipeline. The [ProgressUpdate]
// struct carries phase, step counters, messages, and the per-file [Outcome]
// for advanced UI rendering.
package tasks
