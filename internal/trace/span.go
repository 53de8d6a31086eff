package trace

import (
	"sync/atomic"
	"time"
)

var spanIDs atomic.Uint64

// Span is an open begin/end pair. A nil or disabled span is inert.
type Span struct {
	tracer  Tracer
	id      uint64
	parent  uint64
	scope   Scope
	name    string
	started time.Time
	fields  []Field
}

// Begin opens a root span.
func Begin(t Tracer, scope Scope, name string, fields ...Field) *Span {
	return begin(t, scope, name, 0, fields)
}

// Child opens a span nested under s on the same tracer.
func (s *Span) Child(scope Scope, name string, fields ...Field) *Span {
	if s == nil || s.tracer == nil {
		return &Span{}
	}
	return begin(s.tracer, scope, name, s.id, fields)
}

func begin(t Tracer, scope Scope, name string, parent uint64, fields []Field) *Span {
	if t == nil || !t.Level().ShouldEmit(scope) {
		return &Span{}
	}
	s := &Span{
		tracer:  t,
		id:      spanIDs.Add(1),
		parent:  parent,
		scope:   scope,
		name:    name,
		started: time.Now(),
	}
	t.Emit(&Event{
		Time:     s.started,
		Kind:     KindSpanBegin,
		Scope:    scope,
		SpanID:   s.id,
		ParentID: parent,
		Name:     name,
		Fields:   fields,
	})
	return s
}

// With adds fields to the end event.
func (s *Span) With(fields ...Field) *Span {
	if s != nil && s.tracer != nil {
		s.fields = append(s.fields, fields...)
	}
	return s
}

// End emits the end event and returns the span duration.
func (s *Span) End(detail string) time.Duration {
	if s == nil || s.tracer == nil {
		return 0
	}
	now := time.Now()
	s.tracer.Emit(&Event{
		Time:     now,
		Kind:     KindSpanEnd,
		Scope:    s.scope,
		SpanID:   s.id,
		ParentID: s.parent,
		Name:     s.name,
		Detail:   detail,
		Fields:   s.fields,
	})
	return now.Sub(s.started)
}

// ID returns the span ID, 0 for an inert span.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

// Point emits an instant event when t accepts scope.
func Point(t Tracer, scope Scope, name, detail string, fields ...Field) {
	if t == nil || !t.Level().ShouldEmit(scope) {
		return
	}
	t.Emit(&Event{
		Time:   time.Now(),
		Kind:   KindPoint,
		Scope:  scope,
		Name:   name,
		Detail: detail,
		Fields: fields,
	})
}
