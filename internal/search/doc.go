// Package search scrapes Google web and image results for menu items
// through a Selenium-driven browser. Google serves the knowledge panel
// and image grid from JavaScript, so a real browser session is the only
// reliable way to read them.
//
// Browser sessions die: the remote end garbage-collects idle ones and
// drivers crash. The Engine hides this by distinguishing a lost session
// (replace the session, repeat the lookup) from a page that simply has
// no matching element (return nothing, move on).
package search
