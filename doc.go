// Package arcade is a small navigational shell for server-rendered pages.
// A Table declares which component renders for which path, a Navigator
// resolves request paths against it in registration order (first match wins)
// and an App mounts the navigator onto a Router, rendering views inside a
// host node of the page layout. HTMX requests aimed at the host node receive
// the bare view so navigation swaps content without full page loads.
package arcade
