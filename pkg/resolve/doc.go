// Package resolve selects the renderer and transition that apply to a view.
//
// Renderer and transition lookups follow different fallback rules:
//
//   - A renderer always resolves. When the mapping is missing or has no entry
//     for the slug, the built-in DefaultRenderer is used. A "default" key in
//     the mapping is not consulted.
//   - A transition may resolve to none. When the mapping has no entry for the
//     slug, its "default" entry is used if present; otherwise there is no
//     transition.
//
// The rules are kept separate on purpose; callers rely on a page without a
// transition mapping performing an instant swap.
package resolve
