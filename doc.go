// Package quire is the composition root of a small personal note store.
//
// A Notebook is an ordered collection of immutable notes persisted as one
// JSON array through a pluggable Backend. Fields equal to their defaults
// (normal importance, white color) are omitted on save; loading is lenient,
// skipping malformed elements and reporting each as a ParseWarning.
//
// Backends live under pkg/adapters: local files (with optional git history),
// Redis, S3, WebDAV, MongoDB and SQL via gorm.
//
// Usage:
//
//	nb := quire.New(fs.NewBackend(fs.Config{Root: dir}))
//	nb.Add(quire.NewNote("groceries", "milk, eggs", quire.Important))
//	if err := nb.Save(ctx); err != nil {
//		return err
//	}
//
// Hosts that read quire.yaml use Open instead, which builds the configured
// backend and loads the notebook.
package quire
