// Package resolve turns a user-typed app name into a catalog entry.
//
// # Normalization
//
// The query and every catalog name are case-folded and split into tokens on
// anything that is not a letter or digit, so "Visual Studio Code",
// "visual-studio-code" and "VISUAL_STUDIO_CODE" are the same name.
//
// # Matching
//
//   - Exact: the joined tokens are equal. Always Matched with score 100,
//     no fuzzy scoring happens.
//   - Fuzzy: tokens are sorted and the Levenshtein ratio (0-100) is taken,
//     so word order does not matter. The best candidate is Matched only if
//     it reaches the threshold and leads the runner-up by the margin.
//   - Everything else is Ambiguous, carrying the top candidates for the
//     caller to offer to the user.
//
// Catalog aliases are matched exactly like names, and an entry is scored by
// its best-matching name, so "vscod" finds visual-studio-code through its
// vscode alias. Each entry appears at most once among the candidates.
//
// Ties keep catalog order.
package resolve
