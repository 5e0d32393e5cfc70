// Package prereq assembles the "Prerequisites" box shown at the top of a guide.
//
// A block always starts with the default requirement items and continues with
// the items of a Markdown bullet list supplied by the page author:
//
//	<Prerequisites>
//
//	- Configured a [Data Source](/docs/connect)
//	- Created an Expectation Suite
//
//	</Prerequisites>
//
// Items keep their inline structure (text, links, emphasis, code) so links stay
// clickable. Content that is not a single bullet list never fails the page:
// Merge reports one diagnostic and substitutes a visible placeholder item.
package prereq
