// Package gopher implements the data model of the Gopher protocol (RFC 1436):
// resource locators, the item type registry, and the directory (menu) parser.
//
// The package is pure: nothing here touches the network. Transport lives in
// pkg/transport and orchestration in pkg/client; both operate on the types
// defined here.
//
// # Locators
//
// A Gopher locator follows the format
//
//	[scheme://]host[:port][/typechar][selector][?query]
//
// where the scheme is "gopher" (plaintext, the default) or "gophers" (TLS).
// [Parse] accepts anything from a bare hostname to a fully qualified locator
// and [URL.String] renders the canonical form, so Parse and String round-trip.
//
// # Menus
//
// A directory response is a sequence of tab-separated lines, each describing
// one [Item]. Servers in the wild emit malformed lines; [ParseMenu] drops
// those with a recorded warning instead of failing the whole listing.
package gopher
