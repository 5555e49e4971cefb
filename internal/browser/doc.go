// Package browser defines the capabilities the crawler needs from a browser
// and provides two implementations of them.
//
// # Capabilities
//
// The crawler only ever navigates, waits for an element with a bound,
// queries elements by CSS selector, reads text and attributes, and opens,
// activates and closes tabs. Browser, Page and Element expose exactly that.
//
// Bounded waits return a tagged Result (Found, NotFound or TimedOut) instead
// of an error, so that "the element is not there" is an ordinary value the
// caller branches on. Result.Err is reserved for failures of the driver
// itself, such as a crashed tab or a cancelled context.
//
// # Implementations
//
//   - Rod drives a real Chromium through the DevTools protocol (go-rod).
//     The court site renders client-side, so this is the default.
//   - Static fetches pages over HTTP (resty) and queries them with goquery.
//     It serves server-rendered mirrors and doubles as the fake DOM in tests.
package browser
