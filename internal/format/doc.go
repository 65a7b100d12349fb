// Package format renders metadata values for humans.
//
// Every formatter taking a pointer prints [Unknown] for nil, so a missing
// value is never shown as zero.
package format
