// Package structure turns the paragraph stream and placed media of a
// document into role-labelled output: font roles, chapter/section/TOC/index
// structure, and the assembled document tree.
package structure

import "pdfreflow/grouping"

// Bookmarks optionally maps a page number to a chapter title, taken from the
// extractor's PDF outline when one was supplied.
type Bookmarks map[int]string

// Input is everything Labeller.Label needs: the whole document's merged
// paragraph stream (already cross-page-merged by package grouping), the
// font-role table derived by DeriveRoles, and an optional bookmark outline.
type Input struct {
	Paragraphs []grouping.Paragraph
	Roles      Table
	Bookmarks  Bookmarks
}
