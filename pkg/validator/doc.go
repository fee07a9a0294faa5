// Package validator is a declarative validation engine driven by named rules.
//
// Rules live in a Catalog and are referenced by name with optional
// parameters. A Schema binds ordered rule chains to object properties; the
// engine runs the chains and returns a Result describing every failure.
//
// # Rules
//
// Every rule has the same signature:
//
//	func(ctx context.Context, in *validator.Input) error
//
// A nil return means the value passed. A non-nil error is a failure and its
// message is reported; use Violation to return a translatable failure or Fail
// for a literal message. A rule may replace in.Value to coerce the value seen
// by later rules (see Trim, ToInt and friends). Panicking rules are reported
// as failures. Async runs a rule on its own goroutine, bounded by ctx.
//
// Rule references come in several shapes, all accepted by Normalize:
//
//	"Required"                              // name only
//	validator.R("MinLength", 3)             // name with parameters
//	map[string][]any{"Between": {1, 10}}    // map form, as in schema files
//	validator.Fn("Even", isEven)            // inline function
//	addressSchema                           // nested schema
//
// # Sentinels
//
// Empty, Nullable and Optional end the chain successfully when the value is
// the empty string, nil (or absent), or absent respectively. They only act at
// their position in the chain, so they are normally bound first:
//
//	schema.Bind("nickname", validator.Optional(), validator.R("MinLength", 3))
//
// # Usage
//
//	user := validator.NewSchema("user").
//		Bind("email", "Required", "Email").
//		Bind("age", "Optional", validator.R("Min", 18)).
//		Label("email", "E-mail address")
//
//	res := validator.ValidateObject(ctx, user, payload)
//	if !res.Success {
//		for _, e := range res.Errors {
//			fmt.Println(e.Location(), e.Message)
//		}
//	}
//
// Object validation reports every failing property; each property's chain
// stops at its first failing rule. Nested schemas report full paths such as
// "items[1].name".
//
// # Messages
//
// Failures carry a translation key and values. With WithTranslator the
// engine renders messages through the translator (an *i18n.Translator works
// as-is); otherwise the built-in English messages are used.
//
// # Schema files
//
// ParseSchemas, LoadSchemas and LoadSchemaFile build schemas from YAML or
// JSON documents, resolving nested schema references by name.
package validator
