// Package diagram turns mermaid diagram source into HTML.
//
// Renderer rasterizes a diagram to PNG by invoking an external mermaid-cli
// command, trying an ordered list of candidate invocations, and inlines the
// image as a base64 data URI. When no candidate succeeds, or rendering is
// disabled, it falls back to RenderFallback, a fixed HTML/CSS layout that
// needs no external tools.
//
// Rendering never fails the document: failures are reported as a notice on
// the Result.
package diagram
