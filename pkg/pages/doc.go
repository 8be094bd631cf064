// Package pages builds the responses served on every endpoint.
//
// A Builder routes on the request target:
//
//	/              root page with the current time
//	/many_photos   gallery page with a 6x6 thumbnail table
//	/favicon.ico   icon
//	/photo*.jpg    photo
//	anything else  404 page naming the requested target
//
// Page templates and binary resources are embedded in the binary. An
// override directory may replace any of them, and a Watcher reloads that
// directory on change.
package pages
