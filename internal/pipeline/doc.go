// Package pipeline turns Markdown text into HTML fragments.
//
// The stages are:
//   - line-ending normalization
//   - block segmentation into text and ```mermaid diagram segments
//   - text rendering, either by the built-in Rewriter (a fixed sequence of
//     pattern passes over a small Markdown subset, tables first) or by the
//     goldmark engine
//
// Diagram segments are not rendered here; see internal/diagram. Wrapping
// the fragments in a full document is done by the root md2html package.
package pipeline
