package trace

import "time"

// Kind represents the type of trace event.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
)

var kindNames = [...]string{KindSpanBegin: "begin", KindSpanEnd: "end", KindPoint: "point"}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}

// Scope is the granularity of an event; coarser scopes have lower values.
type Scope uint8

const (
	ScopeDriver Scope = iota + 1 // one dxop command
	ScopeUnit                    // one compilation unit
	ScopeSymbol                  // one aggregate type or declaration
)

var scopeNames = [...]string{ScopeDriver: "driver", ScopeUnit: "unit", ScopeSymbol: "symbol"}

func (s Scope) String() string {
	if int(s) < len(scopeNames) && scopeNames[s] != "" {
		return scopeNames[s]
	}
	return "unknown"
}

// Field is one key/value annotation. Fields keep their emission order.
type Field struct {
	Key   string
	Value string
}

// F is shorthand for Field{key, value}.
func F(key, value string) Field { return Field{Key: key, Value: value} }

// Event is a single trace record.
type Event struct {
	Time     time.Time
	Seq      uint64 // assigned by the tracer that stores the event
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64
	Name     string // e.g. "symbol.create"
	Detail   string
	Fields   []Field
}

// Field returns the value stored under key.
func (ev *Event) Field(key string) (string, bool) {
	for _, f := range ev.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}
