// Package planner handles the planning phase of reorganization operations.
//
// The planner turns a directory or a list of files into a deterministic
// OperationPlan: the per-file entries a caller can review and the ordered
// moves the transaction executor will perform. Nothing in this package
// mutates the filesystem.
//
// Key responsibilities:
//   - Draft sort, rename and sort-then-rename plans
//   - Resolve destination collisions with " (n)" suffixes
//   - Validate plans before execution (paths, names, duplicates, existing targets)
//   - Filter candidate files and apply find/replace edits to proposals
package planner
