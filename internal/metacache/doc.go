// Package metacache persists fetched repository metadata between runs.
//
// Records are keyed by repository id ("owner/name"), at most one per key.
// A record is never modified after it is stored: a refresh stores a new
// *Record, so a reader holding the old pointer keeps a complete value.
//
// # File Layout
//
// The [File] store keeps everything in metadata.json inside the cache
// directory:
//
//	{
//	  "schema": "1.0.0",
//	  "records": {
//	    "dracula/vim": {
//	      "repository": "dracula/vim",
//	      "metadata": { "stars": 1300, ... },
//	      "fetched_at": "2026-10-19T08:00:00Z",
//	      "validator": "W/\"6f1c...\""
//	    }
//	  }
//	}
//
// # Self-Healing
//
// The cache is an optimization. An unreadable file, invalid JSON or a schema
// with a different major version load as an empty cache; a single record that
// does not decode or validate is dropped and the rest are kept.
//
// # Concurrency
//
// Stores are safe for concurrent use. File writes go through a temp file and
// rename, serialized across processes by a lock file next to the cache file.
package metacache
