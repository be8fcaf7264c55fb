// Package md2html converts Markdown documents to standalone HTML files.
//
// # Quick Start
//
//	conv, err := md2html.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := conv.Convert(ctx, md2html.Input{
//	    Markdown: "# Hello\n\nWorld",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("output.html", result.HTML, 0644)
//
// The result holds the complete document (result.HTML), the converted body
// without the document shell (result.Body), and non-fatal notices.
//
// # Conversion Pipeline
//
//  1. Line endings are normalized to "\n".
//  2. The document is split into text segments and ```mermaid blocks.
//  3. Text segments go through the text engine: the built-in rewriter
//     (tables, headings, emphasis, code, lists, checkboxes, paragraphs) or
//     goldmark. Relative images are then inlined as data: URIs.
//  4. Diagram blocks are rasterized by mermaid-cli into inline PNG images.
//     When no renderer works, a HTML/CSS layout is used and a Notice is
//     recorded.
//  5. Results are joined in source order and placed in the document
//     template with the selected stylesheet.
//
// # Configuration
//
//	conv, err := md2html.NewConverter(
//	    md2html.WithEngine("goldmark"),
//	    md2html.WithStyle("dark"),
//	    md2html.WithTimeout(45 * time.Second),
//	    md2html.WithDiagramCommands(md2html.DiagramCommand{Name: "mmdc"}),
//	)
//
// # Concurrency
//
// A Converter is safe for concurrent use. ResolvePoolSize suggests a worker
// count for batch conversion.
//
// # Custom Assets
//
//	loader, err := md2html.NewAssetLoader("/path/to/assets")
//	conv, err := md2html.NewConverter(md2html.WithAssetLoader(loader))
//
// Asset directory structure:
//
//	assets/
//	├── styles/
//	│   └── custom.css
//	└── templates/
//	    └── document.html
//
// # Renderer Requirements
//
// Diagram rasterization needs Node.js with either npx or a global mmdc
// (npm install -g @mermaid-js/mermaid-cli). Without them every diagram
// falls back to the HTML/CSS layout.
package md2html
