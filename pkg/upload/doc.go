// Package upload turns multipart request bodies into request parameters and
// uploaded-file attributes.
//
// A Materializer runs once per request, before the handler. When the request
// is not multipart it does nothing. Otherwise it:
//
//   - resolves the total and per-file size limits for the target operation
//     (context override, then the Overrides table, then the global Config);
//   - walks the parts produced by a Decoder in arrival order;
//   - renames array-style fields ("tags[]") to unique indexed names
//     ("tags[0]", "tags[1]", ...);
//   - decodes form-field values with the request character encoding,
//     silently falling back to UTF-8;
//   - attaches every file part with a non-empty filename as a *File:
//     parameter name=name and attribute name=*File;
//   - publishes all form-field values at once after the last part.
//
// Decode failures never escape as errors. A size violation adds the
// validation message ("upload", "file.limit.exceeded", actual, permitted),
// and any other malformed body adds ("upload", "file.upload.exception").
// Downstream handlers decide whether to stop by inspecting the
// request-scoped validator.Messages.
//
// # Usage
//
//	var cfg upload.Config
//	config.MustLoad(&cfg)
//
//	m := upload.New(cfg, upload.WithLogger(log), upload.WithLimitResolver(upload.Overrides{
//		"POST /avatars": {Size: 512 << 10, FileSize: 256 << 10},
//	}))
//
//	r := chi.NewRouter()
//	r.With(upload.Middleware(m)).Post("/avatars", func(w http.ResponseWriter, r *http.Request) {
//		req, _ := request.FromContext(r.Context())
//		if msgs := validator.FromContext(r.Context()); !msgs.IsEmpty() {
//			// render messages
//		}
//		avatar, _ := req.Attribute("avatar").(*upload.File)
//		// ...
//	})
//
// File content larger than Config.MaxMemory is spooled to Config.Directory.
// The Materializer registers removal of those files with the request, and
// Middleware runs that cleanup once the handler returns.
package upload
