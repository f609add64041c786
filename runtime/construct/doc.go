// Package construct dispatches object construction for compiler-emitted code.
//
// Construct runs a Constructor and then applies the optional capabilities of
// the resulting instance:
//
//   - CustomConstructor: a construction hook that may substitute another
//     object (factory pattern).
//   - MixinInitializer: a post-construction hook run for its side effects.
//   - Invokable: a designated call entry point. Such instances are returned
//     wrapped in a Wrapper that forwards every structural operation to the
//     instance and can itself be called.
//
// Capabilities are plain interfaces checked with type assertions, once per
// dispatch. Errors and panics raised by the constructor or any hook reach the
// caller unchanged.
package construct
