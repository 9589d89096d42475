// Package sim provides the hook machinery that lets tracers observe a
// simulator without the simulator knowing about them.
package sim

// HookPos names a point in a run where hooks are invoked, such as the start
// of a run or the translation of one address.
type HookPos struct {
	Name string
}

// HookCtx is what a hook receives. Domain is the simulator that fired the
// hook. Item and Detail depend on Pos; each position documents what it
// carries, for example a request and a run ID when a run starts.
type HookCtx struct {
	Domain Hookable
	Pos    *HookPos
	Item   any
	Detail any
}

// Hookable is implemented by simulators that tracers can attach to.
type Hookable interface {
	AcceptHook(hook Hook)
	NumHooks() int
}

// A Hook observes runs. Func is called synchronously at every position, so it
// must not block.
type Hook interface {
	Func(ctx HookCtx)
}

// HookFunc adapts a function to the Hook interface.
type HookFunc func(ctx HookCtx)

// Func calls f.
func (f HookFunc) Func(ctx HookCtx) {
	f(ctx)
}

// HookableBase keeps the hooks of a simulator and invokes them in the order
// they were attached. Hooks must be attached before runs start.
type HookableBase struct {
	Hooks []Hook
}

// NewHookableBase creates a HookableBase with no hooks.
func NewHookableBase() *HookableBase {
	return &HookableBase{Hooks: make([]Hook, 0)}
}

// AcceptHook attaches a hook.
func (h *HookableBase) AcceptHook(hook Hook) {
	h.Hooks = append(h.Hooks, hook)
}

// NumHooks returns the number of attached hooks.
func (h *HookableBase) NumHooks() int {
	return len(h.Hooks)
}

// InvokeHook calls every attached hook with ctx.
func (h *HookableBase) InvokeHook(ctx HookCtx) {
	for _, hook := range h.Hooks {
		hook.Func(ctx)
	}
}
