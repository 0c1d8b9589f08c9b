// Package recwire implements a schema-driven serialization, deserialization,
// and validation engine for record types.
//
// A Schema describes a record's fields once (name, type tag, accessor pair,
// validation rules) and is then reused to drive three operations over a
// generic JSON-like value tree:
//
//   - Encode walks a populated record and produces a declaration-ordered
//     value tree; a field whose handler is missing or failing degrades to
//     null and the call still succeeds.
//   - Decode walks an input value tree and writes into a record instance,
//     enforcing required/type-match semantics and failing fast on the first
//     offending field.
//   - Validate inspects an input value tree against the full rule set
//     without touching any record memory, reporting the first violation.
//
// Schemas are built through a typed builder and are immutable afterwards, so
// a single Schema serves any number of concurrent callers. String-backed
// formats (email, url, uuid, date, datetime) and user-defined custom types
// are implemented by pluggable TypeHandler values resolved through a
// Registry.
package recwire
