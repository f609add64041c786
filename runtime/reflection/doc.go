// Package reflection stores and serves structural metadata about decorated
// classes.
//
// # Overview
//
// Compiler-emitted code attaches a reflection decorator to every class and to
// every class member. Each decorator is bound to a class identifier and, for
// members, to the compiler-assigned member index:
//
//	dec := registry.BindMember(classID, 3)
//	dec(method, &reflection.DecoratorContext{
//		Kind:     reflection.KindMethod,
//		Name:     reflection.StringName("publicMethod"),
//		Metadata: classMetadata,
//	})
//
// When a decorator runs, the class record is created (or extended) in the
// Registry. Application code later queries it from a class value, an instance,
// or the identifier itself:
//
//	record, ok := registry.Lookup(instance)
//	for _, m := range record.Members {
//		fmt.Println(m.Name, m.Parameters())
//	}
//
// # Lazy resolution
//
// Parameter lists and docblocks are never copied into the record. Member.Parameters
// and Member.Docblock re-query the registry's Provider on every call, using the
// member index verbatim, so providers that update their side-channel are always
// observed.
//
// # Lifetime
//
// Records are never evicted. Classes live for the whole process, so the
// registry is an unbounded, append-only cache. Use NewRegistry to build an
// isolated registry for tests; Default returns the process-wide instance.
package reflection
