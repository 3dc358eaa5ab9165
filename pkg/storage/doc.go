// Package storage persists uploaded files.
//
// A Storage writes the content of a Source under a key. *upload.File is a
// Source, so handlers can move request uploads out of the temporary spool
// before the request cleanup removes them:
//
//	file, _ := req.Attribute("avatar").(*upload.File)
//	obj, err := store.Save(ctx, file, storage.NewKey("avatars", file.Filename))
//
// Two backends are provided. LocalStorage confines every key to a base
// directory. S3Storage writes to Amazon S3 or any S3-compatible service
// through aws-sdk-go-v2.
package storage
