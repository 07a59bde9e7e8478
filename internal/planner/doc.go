// Package planner handles the planning phase of a selective import.
//
// The planner compares the glyphs of the sources being imported with the
// glyphs already stored in a fontgarden and decides which glyphs are added,
// which are modified and which are removed. It never touches the filesystem;
// the engine executes the resulting plan.
//
// Key responsibilities:
//   - Compute the reference set: stored glyphs in the target sets, closed over
//     component references
//   - Classify glyphs into added, modified and removed
//   - Generate an ImportPlan with deterministic, per-glyph operations
//   - Detect conflicts (imported glyphs stored outside the target sets)
package planner
