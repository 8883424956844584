// Package tandem is a client library for the Tandem chat platform.
//
// The core code is in package 'store', which routes typed actions to
// caller-provided layouts.  Entity wrappers are in 'entity', REST
// plumbing in 'rest', and some command-line tools are in 'cmd'.
//
// See https://github.com/tandemchat/tandem-go/blob/master/README.md
// for more.
package tandem
