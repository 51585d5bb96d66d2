// Package domain models the client-side behaviors of the RadioOperator.net
// homepage.
//
// # Page Contract
//
// The homepage exposes a small set of identifier-addressable elements:
//
//	navigation         top navigation <select>
//	bottom_navigation  bottom navigation <select>
//	clock              <span> receiving the current date and time
//	colorPicker        background color <select>
//
// Each navigation select starts with a disabled, pre-selected, empty-valued
// placeholder option. The remaining options carry navigation targets: absolute
// site URLs, relative page links, and the Weather Alert Pro tool link.
//
// # Navigation
//
// A navigation select is a one-shot action menu, not a persistent selector.
// Choosing an option navigates the current browsing context to the option
// value, except for the external tool link (the sentinel), which opens in a
// new browsing context with no opener reference. Either way the select is
// reset to the placeholder (index 0) afterwards.
//
// # Clock
//
// The clock display is rewritten once per second with the local date and time:
//
//	"<Weekday>, <Month> <Day>, <Year>, <HH>:<MM>:<SS>"
//	e.g. "Tuesday, March 5, 2024, 07:03:09"
//
// # Degradation
//
// Every element is optional. Attaching to, or writing into, an element that is
// not on the page is a silent no-op so that page fragments can be reused on
// pages lacking one of the controls.
package domain
