// Package document reads and writes scene definition documents.
//
// # Overview
//
// A document declares the tracks of a scene, their width constraints and
// parameters, the interval records shown in them and the output settings
// used for paged export. It is the on-disk form of an editing session:
// [Document.Build] turns it into a live scene and model container, and
// [Document.Capture] writes the state of an edited scene back.
//
// # Formats
//
// Three encodings carry the same fields and are chosen by file extension:
//
//   - .toml: github.com/BurntSushi/toml
//   - .yaml, .yml: gopkg.in/yaml.v3
//   - .json: encoding/json
//
// # TOML Example
//
//	title = "Core 12A"
//	scale = 2
//	paper = "a4"
//	per_page = 300
//
//	[[tracks]]
//	type = "ruler"
//
//	[[tracks]]
//	type = "intervals"
//	constraint = "*"
//	params = { type = "lithology", title = "Lithology" }
//
//	[[intervals]]
//	type = "lithology"
//	top = 0
//	base = 12.5
//	label = "sand"
//
// # Fields
//
// Scene: title, origin ("top" or "base"), scale (pixels per unit), width
// (preferred width in pixels), borders.
//
// Paging: paper (a name or "WxH[PWxPH+X+Y]"), per_page (units per page,
// 0 fits the whole content on one page), start (first unit shown, defaults
// to the top of the content), header and footer (default true).
//
// Tracks: type (a name known to the track registry), constraint (see
// [scene.ParseConstraint]), params.
//
// Intervals: id (generated when empty), type, top, base, label.
//
// # Errors
//
// Decoding failures carry INVALID_FORMAT, semantic problems INVALID_DOCUMENT,
// unknown track types INVALID_TRACK and unreadable paths FILE_NOT_FOUND; see
// package errors.
package document
