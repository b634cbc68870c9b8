package reactive

// Context provides dependency lookup through the owner tree. Provide a
// value on an Owner, then Use it from any descendant scope.
//
//	var DragContext = reactive.CreateContext[dnd.Context](nil)
//
//	root.Run(func() {
//	    DragContext.Provide(store)
//	    child := reactive.NewOwner(root)
//	    child.Run(func() { ctx := DragContext.Use() })
//	})
type Context[T any] struct {
	key          any
	defaultValue T
}

type contextKey[T any] struct {
	ctx *Context[T]
}

// CreateContext creates a context with a default returned by Use when no
// provider is found.
func CreateContext[T any](defaultValue T) *Context[T] {
	ctx := &Context[T]{defaultValue: defaultValue}
	ctx.key = contextKey[T]{ctx: ctx}
	return ctx
}

// Provide stores value on the current owner. Outside an owner it does
// nothing.
func (c *Context[T]) Provide(value T) {
	if owner := getCurrentOwner(); owner != nil {
		owner.SetValue(c.key, value)
	}
}

// ProvideOn stores value on owner directly.
func (c *Context[T]) ProvideOn(owner *Owner, value T) {
	owner.SetValue(c.key, value)
}

// Use returns the value from the nearest provider, or the default.
func (c *Context[T]) Use() T {
	if owner := getCurrentOwner(); owner != nil {
		if value := owner.GetValue(c.key); value != nil {
			if typed, ok := value.(T); ok {
				return typed
			}
		}
	}
	return c.defaultValue
}

// Default returns the default value for this context.
func (c *Context[T]) Default() T {
	return c.defaultValue
}
