// Package codec maps records between the canonical field names used inside
// xmigraph (snake_case) and the external names used on the XMI wire
// (PascalCase).
//
// Every field is declared once, as a Field pair, in a Schema. Decoding is
// lenient and accepts either name; encoding is strict and writes external
// names only. For any record holding exactly the schema's canonical fields:
//
//	s.Decode(s.Encode(rec, Verbose)) == rec
package codec
