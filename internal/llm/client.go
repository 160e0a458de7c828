package llm

import "context"

// Client is the model-provider surface the pipeline and chat layers depend
// on. Every method returns the raw text of the model reply; callers own the
// parsing because replies are untrusted.
type Client interface {
	// Vision sends a prompt plus a base64-encoded image to the
	// vision-capable deployment.
	Vision(ctx context.Context, prompt, imageB64, mimeType string) (string, error)

	// Reason sends a prompt to the reasoning deployment used for scoring.
	Reason(ctx context.Context, prompt string) (string, error)

	// Chat sends a plain system/user exchange to the chat deployment.
	Chat(ctx context.Context, system, user string) (string, error)
}
