// Minimal stand-in for the real package. The analyzer only matches the
// `sequence.Emitter` parameter type syntactically.
package sequence

type Emitter[T any] interface {
	Next(v T) bool
}
