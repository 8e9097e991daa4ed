// Package convert turns Markdown or a restricted HTML subset into the edit
// operations that recreate it in a document addressed by character offsets.
//
// Conversion runs in four stages: the block classifier strips one block
// marker per line, the inline formatter strips inline syntax and records
// character spans against the stripped text, the assembler joins lines and
// rebases every span onto absolute document offsets, and the emitter turns
// the result into one text insertion followed by one style operation per
// span. HTML input is first rewritten into Markdown.
//
// Offsets are measured in UTF-16 code units, which is how the document
// service indexes its content. Everything in this package is a pure function
// of its input and safe for concurrent use.
package convert
