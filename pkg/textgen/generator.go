package textgen

import "context"

// Generator is the metered operation behind the gate: a single
// request/response call to a text-completion provider. The gateway
// treats it as opaque: quota is consumed before the call and is not
// refunded if the call fails.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
