// Package errors provides coded, actionable errors for pageswap's outer
// layers: configuration, page sources, the navigator and the CLI.
//
// The parsing and lookup packages (urlparts, view, resolve) never fail; an
// absent part or view is reported to the caller, and it is the caller that
// decides whether that is an error. When it is, the error is built here.
//
// # Error Codes
//
//	E100-E199  configuration
//	E200-E299  page sources
//	E300-E399  navigation
//
// # Usage
//
//	err := errors.New("E300").
//	    WithDetail("No element with router-view in https://example.com/about").
//	    WithSuggestion("Mark the swappable region with router-view=\"slug\"")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR E300: View not found
//	//
//	//   No element with router-view in https://example.com/about
//	//
//	//   Hint: Mark the swappable region with router-view="slug"
package errors
