package logging

import (
	"context"

	"github.com/google/uuid"
)

type debugKeyCtx struct{}

// EnableDebugMode returns a context under which CDebug entries are logged at any level, tagged
// with a debug_key field. An empty key is replaced by a random one.
func EnableDebugMode(ctx context.Context, key string) context.Context {
	if key == "" {
		key = uuid.NewString()[:8]
	}
	return context.WithValue(ctx, debugKeyCtx{}, key)
}

// DebugKey returns the key attached by EnableDebugMode, if any.
func DebugKey(ctx context.Context) (string, bool) {
	key := debugKeyOf(ctx)
	return key, key != ""
}

func debugKeyOf(ctx context.Context) string {
	key, _ := ctx.Value(debugKeyCtx{}).(string)
	return key
}
