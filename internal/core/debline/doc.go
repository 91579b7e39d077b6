// Package debline converts between one-line APT source descriptors and
// domain.Source records.
//
// A one-line descriptor looks like:
//
//	# deb [ arch=amd64,armel lang=en_US ] http://example.com/ suite main contrib # comment
//
// Parse turns such a line into a record and Render turns a record back into
// a line. Both are pure functions; the option block codec is exposed as
// DecodeOptions and EncodeOptions.
//
// The one-line form can only carry a single type, URI and suite. Records
// holding more than one of those must be stored in the deb822 form instead,
// and Render rejects them with ErrTooManyTypes, ErrTooManyURIs or
// ErrTooManySuites.
package debline
