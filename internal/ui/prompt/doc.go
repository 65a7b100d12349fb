// Package prompt provides the interactive disambiguation prompt shown when
// an app name matches more than one catalog entry.
//
// Prompts draw on stderr so stdout stays clean for piping.
package prompt
