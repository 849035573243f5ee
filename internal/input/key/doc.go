// Package key canonicalizes raw key identifiers delivered by a key-event
// source and classifies them as modifier or regular keys.
//
// The event source supplies symbolic key names (the DOM KeyboardEvent.key
// vocabulary: "Control", "ArrowUp", " ", "a"). This package maps those to the
// display tokens used inside combination strings and answers the single
// classification question the capture engine needs: is this key a modifier?
package key
