// Package formdata decodes multipart/form-data bodies into parts and encodes
// those parts into the outbound representation a backend expects.
//
// Three representations are supported:
//
//	multipart-form    files become "<name>[<fileIndex>]" attachments, fields keep their name
//	indexed-map       every part becomes "<name>[<partIndex>]" in a JSON object
//	flattened-fields  fields keyed by name ("field" when anonymous), files as "<name>[<fileCount>]"
//
// indexed-map is kept for backends that depend on its legacy shape. It does not
// distinguish files from fields and should not be used for new integrations.
package formdata
