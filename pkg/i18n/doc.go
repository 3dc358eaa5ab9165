// Package i18n renders localizable validation messages.
//
// Translations are YAML documents keyed by language tag at the top level:
//
//	en:
//	  file.limit.exceeded: "Too large: {0} bytes sent, {1} allowed."
//	pt-BR:
//	  file:
//	    limit:
//	      exceeded: "Grande demais: {0} de {1} bytes."
//
// Keys may be written flat with dots or as nested maps; both are addressed
// with the same dotted key. Templates use positional placeholders {0}, {1}, ...
// and numeric arguments are formatted for the target locale through
// golang.org/x/text/message.
//
// The translator ships with embedded bundles for the messages produced by
// package upload. Additional bundles are merged on top through adapters:
//
//	tr, err := i18n.NewTranslator(ctx,
//		i18n.NewFSAdapter(os.DirFS("./locales"), "*.yaml"),
//		i18n.WithDefaultLanguage("en"),
//	)
//
// Language negotiation uses golang.org/x/text/language. Middleware stores the
// negotiated tag in the request context, and Locale reads it back:
//
//	r.Use(i18n.Middleware(tr))
//	text := tr.Message(i18n.Locale(ctx), msg)
package i18n
