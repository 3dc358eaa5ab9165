// Package validator holds the localizable messages produced while a request
// is processed.
//
// A Message carries a category, a bundle key and positional arguments; it is
// rendered later by the i18n translator. Messages is the ordered, request
// scoped collection: Middleware installs one per request and FromContext
// returns it, so every stage of the pipeline (decoding, binding, business
// rules) appends to the same list and the handler decides whether to stop.
//
//	msgs := validator.FromContext(r.Context())
//	msgs.Apply(validator.Rule{
//		Check:   func() bool { return title != "" },
//		Message: validator.NewMessage("title", "field.required"),
//	})
//	if !msgs.IsEmpty() {
//		render(w, translator.Messages(lang, msgs))
//	}
package validator
