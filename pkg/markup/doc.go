// Package markup provides the default HTML analyzer used to find the scripts
// a markup file loads directly through <script src="..."> elements.
//
// Script sources are resolved to paths relative to the resource root so they
// can be matched against the walker's jsFiles keys. Remote and inline
// sources are ignored.
package markup
