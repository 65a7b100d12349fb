// Package github is a small client for the GitHub REST endpoints dracula
// reads: repository metadata, README and INSTALL.md.
//
// Metadata requests are conditional. Passing the validator (ETag) of a
// previous response lets GitHub answer 304 Not Modified, which is reported
// as an unchanged [Response] and does not count against the rate limit.
package github
