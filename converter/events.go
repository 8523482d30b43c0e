package converter

import (
	"go/ast"

	"github.com/specular-eng/specular/model"
)

// Event enumerates the lifecycle transitions the converter announces.
// Listeners run synchronously, in registration order, and to completion
// before control returns to the emitter.
type Event int

const (
	// EventRunBegin fires once after the frontend program is created,
	// before any node is converted. Payload: Context.
	EventRunBegin Event = iota

	// EventFileBegin fires when a source unit's file node starts
	// converting. Payload: Context, Reflection (the module), Node.
	EventFileBegin

	// EventDeclarationCreated fires for every declaration reflection.
	// Payload: Context, Reflection, Node.
	EventDeclarationCreated

	// EventSignatureCreated fires for every signature reflection.
	EventSignatureCreated

	// EventParameterCreated fires for every parameter reflection.
	EventParameterCreated

	// EventTypeParameterCreated fires for every type-parameter reflection.
	EventTypeParameterCreated

	// EventFunctionImplementationFound fires when a function declaration
	// carrying a concrete body is encountered.
	EventFunctionImplementationFound

	// EventResolveBegin fires before the resolve pass. Payload: Context.
	EventResolveBegin

	// EventResolve fires once per reflection in the resolve snapshot.
	// Payload: Context, Reflection.
	EventResolve

	// EventResolveEnd fires after the resolve pass. Payload: Context.
	EventResolveEnd

	// EventRunEnd fires once before Convert returns. Payload: Context.
	EventRunEnd
)

var eventNames = map[Event]string{
	EventRunBegin:                    "run begin",
	EventFileBegin:                   "file begin",
	EventDeclarationCreated:          "declaration created",
	EventSignatureCreated:            "signature created",
	EventParameterCreated:            "parameter created",
	EventTypeParameterCreated:        "type parameter created",
	EventFunctionImplementationFound: "function implementation found",
	EventResolveBegin:                "resolve begin",
	EventResolve:                     "resolve",
	EventResolveEnd:                  "resolve end",
	EventRunEnd:                      "run end",
}

// String returns the display name for the event
func (e Event) String() string {
	if name, ok := eventNames[e]; ok {
		return name
	}
	return "unknown"
}

// Payload carries event data. Reflection and Node are nil for the
// run-level and resolve-boundary events.
type Payload struct {
	Context    *Context
	Reflection *model.Reflection
	Node       ast.Node
}

// Listener handles one event occurrence.
type Listener func(Payload)

// Bus is the synchronous event dispatcher. It is not safe for concurrent
// use; the converter's single-threaded execution model makes that moot.
type Bus struct {
	listeners map[Event][]Listener
}

// NewBus creates an empty event bus.
func NewBus() *Bus {
	return &Bus{listeners: make(map[Event][]Listener)}
}

// Subscribe appends a listener for the event. Listeners for one event fire
// in the order they subscribed.
func (b *Bus) Subscribe(event Event, l Listener) {
	b.listeners[event] = append(b.listeners[event], l)
}

// Emit invokes every listener for the event, synchronously and in
// registration order.
func (b *Bus) Emit(event Event, p Payload) {
	for _, l := range b.listeners[event] {
		l(p)
	}
}
