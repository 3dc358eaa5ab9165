// Package request provides a mutable view over *http.Request that carries
// request-scoped parameters and attributes.
//
// Components that run before a handler (for example the multipart
// materializer in package upload) publish decoded values through a Request,
// and handlers read them back without reparsing the body. Parameters follow
// url.Values semantics: every name maps to an ordered list of values.
// Attributes hold arbitrary objects such as uploaded file handles.
//
// # Usage
//
//	r := chi.NewRouter()
//	r.Use(request.Middleware)
//	r.Post("/profile", func(w http.ResponseWriter, r *http.Request) {
//		req, _ := request.FromContext(r.Context())
//		name := req.Parameter("name")
//		avatar, _ := req.Attribute("avatar").(*upload.File)
//		// ...
//	})
//
// The character encoding declared by the client is exposed through
// CharacterEncoding. It can be forced with SetCharacterEncoding, e.g. by a
// middleware that applies an application-wide default.
package request
