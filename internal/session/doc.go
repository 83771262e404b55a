// Package session opens configuration files into editable trees under an
// advisory lock and writes them back atomically.
//
// Session Protocol:
//  1. Open(ctx, path, lensID) - take the lock, read and parse the file
//  2. [Edit Tree() in memory]
//  3. Save() - when dirty, render and replace the file (temp + rename)
//  4. Close() - release the lock and drop the tree; unsaved edits are lost
//
// Close must run on every path, so callers pair Open with defer:
//
//	s, err := mgr.Open(ctx, "/etc/sysctl.conf", lens.SysctlID)
//	if err != nil {
//		return err
//	}
//	defer s.Close()
//
// Crash Recovery:
// A crash before the rename leaves the original file untouched and at most
// a hidden temp file next to it. The next Open of that path removes such
// leftovers while it holds the lock.
//
// Scopes:
// Opens of the same (path, lens) that share a scope (see WithScope) reuse
// one reference-counted session instead of waiting on the lock the scope
// already holds, so nested operations see each other's edits. Opens outside
// a shared scope always serialize on the lock.
package session
