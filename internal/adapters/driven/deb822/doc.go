// Package deb822 implements driven.RecordCodec for the multi-line deb822
// form used by APT .sources files, on top of pault.ag/go/debian/control.
//
// A record is one paragraph:
//
//	X-Repolib-Name: deb-example-com
//	Enabled: yes
//	Types: deb
//	URIs: http://example.com/
//	Suites: suite
//	Components: main
//	Architectures: amd64
//
// Fields other than the fixed set are treated as options and keep their
// paragraph order.
package deb822
