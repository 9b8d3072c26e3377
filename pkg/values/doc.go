// Package values reads the input sequence a tree is built from.
//
// Values are kept as strings, exactly as written, so that "007" or "1.50"
// render as typed. They come from command-line arguments ([FromArgs]) or a
// file ([ReadFile]) in JSON, YAML, TOML or plain text form.
//
// The tree builder assumes its input is already sorted. [Sort] puts values
// in [Order] before building; [OrderNone] keeps them as given.
package values
