// Package sidechannel provides backends for the internal reflection data the
// compiler emits alongside generated code.
//
// Every backend implements reflection.Provider. Lookups go to the backend on
// each call; nothing is cached here, so a registry sees updates as soon as
// they are stored.
//
// A side-channel table is a JSON document of the form
//
//	{"version": "1", "generated": "2024-01-01T00:00:00Z", "classes": {"<id>": {...}}}
//
// and may be gzip-compressed on disk.
package sidechannel
