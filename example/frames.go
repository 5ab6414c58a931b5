// Package example holds framegen output for a small control byte, a
// header whose address is present only when a discriminant says so, and
// a packet whose two-byte control word selects a payload of 0, 2 or 8
// bytes.
// frames_gen.go is regenerated from schema.yaml.
package example

//go:generate go run ../cmd/framegen generate --out . schema.yaml
