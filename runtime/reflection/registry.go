package reflection

import (
	"errors"
	"reflect"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// NoMemberIndex marks a binding without a member index.
const NoMemberIndex = -1

var (
	// ErrInvalidPatternFlag is returned when a regular expression literal
	// carries a flag that has no matcher equivalent.
	ErrInvalidPatternFlag = errors.New("invalid regular expression flag")
)

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for decoration diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Registry maps class identifiers to reflection records. Records are created
// by decorators returned from Bind and BindMember and are never evicted.
type Registry struct {
	mu       sync.RWMutex
	provider Provider
	logger   *zap.Logger
	records  map[ClassID]*Record

	// identities maps a class's metadata dictionary back to its identifier
	// so that class values and instances resolve to the same record.
	identities map[*Metadata]ClassID
}

// NewRegistry creates an isolated registry backed by provider. A nil provider
// behaves as an empty one.
func NewRegistry(provider Provider, opts ...Option) *Registry {
	if provider == nil {
		provider = noProvider{}
	}

	r := &Registry{
		provider:   provider,
		logger:     zap.NewNop(),
		records:    make(map[ClassID]*Record),
		identities: make(map[*Metadata]ClassID),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var (
	defaultMu       sync.RWMutex
	defaultRegistry = NewRegistry(nil)
)

// Default returns the process-wide registry.
func Default() *Registry {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultRegistry
}

// SetDefault replaces the process-wide registry. It is meant to be called
// once at startup, before any class is decorated.
func SetDefault(r *Registry) {
	if r == nil {
		return
	}
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultRegistry = r
}

// Provider returns the registry's internal reflection data source.
func (r *Registry) Provider() Provider {
	return r.provider
}

// Bind returns the reflection decorator for a class-level site without a
// constructor.
func (r *Registry) Bind(id ClassID) Decorator {
	return r.BindMember(id, NoMemberIndex)
}

// BindMember returns the reflection decorator for the member at memberIndex.
// Applied to a class, the index designates the constructor, and a constructor
// member is recorded.
func (r *Registry) BindMember(id ClassID, memberIndex int) Decorator {
	return func(value any, ctx *DecoratorContext) any {
		r.decorate(id, memberIndex, value, ctx)
		return nil
	}
}

func (r *Registry) decorate(id ClassID, memberIndex int, value any, ctx *DecoratorContext) {
	if ctx == nil {
		r.logger.Debug("reflection decorator called without context", zap.String("class_id", id.String()))
		return
	}

	var member *Member
	switch ctx.Kind {
	case KindClass:
		if memberIndex != NoMemberIndex {
			member = &Member{
				MemberIndex: memberIndex,
				Kind:        KindConstructor,
				Name:        StringName("constructor"),
				Access:      &Access{Get: func(any) any { return value }},
			}
		}

	case KindMethod, KindGetter, KindSetter:
		if ctx.Name.IsZero() {
			r.logger.Debug("skipping member with unresolved name",
				zap.String("class_id", id.String()),
				zap.Int("member_index", memberIndex),
			)
			return
		}

		member = newMember(memberIndex, ctx)
		member.Access = withDefaultGetter(ctx.Access, value)

	case KindField, KindAccessor:
		if ctx.Name.IsZero() {
			r.logger.Debug("skipping member with unresolved name",
				zap.String("class_id", id.String()),
				zap.Int("member_index", memberIndex),
			)
			return
		}

		member = newMember(memberIndex, ctx)
		member.Access = ctx.Access

	default:
		r.logger.Debug("ignoring decoration site",
			zap.String("class_id", id.String()),
			zap.String("kind", string(ctx.Kind)),
		)
		return
	}

	rec := r.recordFor(id, ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	// Another decorator may have stored the record in the meantime.
	if existing, ok := r.records[id]; ok {
		rec = existing
	}

	if ctx.Kind == KindClass {
		if ctx.Metadata != nil {
			r.identities[ctx.Metadata] = id
		}
		if rec.synthesized && !ctx.Name.IsZero() {
			rec.FQCN = ctx.Name.String()
			rec.ClassName = rec.FQCN
			rec.synthesized = false
		}
	}

	if member != nil {
		member.classID = id
		member.resolver = r
		rec.Members = append(rec.Members, member)

		r.logger.Debug("recorded member",
			zap.String("class_id", id.String()),
			zap.String("kind", string(member.Kind)),
			zap.Stringer("name", member.Name),
			zap.Int("member_index", member.MemberIndex),
		)
	}

	r.records[id] = rec
}

func newMember(memberIndex int, ctx *DecoratorContext) *Member {
	return &Member{
		MemberIndex: memberIndex,
		Kind:        ctx.Kind,
		Name:        ctx.Name,
		Static:      ctx.Static,
		Private:     ctx.Private,
	}
}

// withDefaultGetter copies access, falling back to a getter that returns the
// decorated value so plain methods stay retrievable.
func withDefaultGetter(access *Access, value any) *Access {
	out := &Access{}
	if access != nil {
		*out = *access
	}
	if out.Get == nil {
		out.Get = func(any) any { return value }
	}
	return out
}

// recordFor returns the stored record for id, or a new unstored one built
// from the provider. Without provider data the record is synthesized from the
// context name; the class site renames it once it runs.
func (r *Registry) recordFor(id ClassID, ctx *DecoratorContext) *Record {
	r.mu.RLock()
	rec, ok := r.records[id]
	r.mu.RUnlock()
	if ok {
		return rec
	}

	data, ok := r.provider.ReflectionData(id)
	if !ok || data == nil {
		name := ctx.Name.String()
		r.logger.Debug("synthesizing reflection record",
			zap.String("class_id", id.String()),
			zap.String("class_name", name),
		)
		return &Record{
			FQCN:        name,
			ClassName:   name,
			id:          id,
			resolver:    r,
			synthesized: true,
		}
	}

	r.logger.Debug("creating reflection record",
		zap.String("class_id", id.String()),
		zap.String("fqcn", data.QualifiedName()),
	)
	return &Record{
		FQCN:      data.QualifiedName(),
		ClassName: data.ClassName,
		Namespace: data.Namespace,
		Filename:  data.Filename,
		id:        id,
		resolver:  r,
	}
}

// Lookup returns the record for a class identifier, a class value, an instance,
// or a metadata dictionary. Class values and instances resolve through the
// MetadataCarrier interface; values exposing Unwrap() any are unwrapped first.
// A nil argument reports false.
func (r *Registry) Lookup(v any) (*Record, bool) {
	id, ok := r.classIDOf(v)
	if !ok {
		return nil, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[id]
	return rec, ok
}

// maxUnwrapDepth bounds Unwrap chains in Lookup.
const maxUnwrapDepth = 16

func (r *Registry) classIDOf(v any) (ClassID, bool) {
	for i := 0; i < maxUnwrapDepth; i++ {
		if isNil(v) {
			return "", false
		}
		u, ok := v.(interface{ Unwrap() any })
		if !ok {
			break
		}
		v = u.Unwrap()
	}

	if isNil(v) {
		return "", false
	}

	switch x := v.(type) {
	case ClassID:
		return x, true
	case string:
		return ClassID(x), true
	case *Metadata:
		return r.identityOf(x)
	case MetadataCarrier:
		return r.identityOf(x.ClassMetadata())
	default:
		return "", false
	}
}

// identityOf walks the metadata parent chain to the nearest marked dictionary.
func (r *Registry) identityOf(md *Metadata) (ClassID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for ; md != nil; md = md.parent {
		if id, ok := r.identities[md]; ok {
			return id, true
		}
	}
	return "", false
}

// Classes returns the identifiers of all stored records, sorted.
func (r *Registry) Classes() []ClassID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]ClassID, 0, len(r.records))
	for id := range r.records {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// isNil reports whether v is nil or a nil pointer, map, slice, func, chan or
// interface value.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
