// Package pipeline implements the Markdown-to-styled-text conversion pipeline.
//
// Stages, in order:
//   - Markdown preprocessing (line endings, Unicode normalization, blank lines)
//   - Markdown to HTML conversion via Goldmark
//   - Markup preprocessing (pre blocks, list tag routing, code line splitting)
//   - HTML walking: text and standard styles (headings, emphasis, links,
//     quotes, images) go straight into the buffer, every other tag goes to
//     a TagHandler
//   - The TagEngine, which turns list, code, center and strike tags into
//     margin, bullet and character style annotations
//
// Trimming and public result types live in the root md2span package.
package pipeline
