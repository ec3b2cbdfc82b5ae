package nscache

import (
	"context"
	"strconv"

	"github.com/unkn0wn-root/nscache/internal/wire"
)

// noGeneration marks "no active generation tracking": either disabled by
// config (empty SetKey) or the counter is currently unreadable.
const noGeneration int32 = -1

// resolveGeneration reads the current generation from the backend. It never
// fails the caller: a missing counter, a backend error, or a malformed
// payload all degrade to noGeneration so operations stay available while the
// counter is unreadable.
func (c *cache) resolveGeneration(ctx context.Context) int32 {
	if c.setKey == "" {
		return noGeneration
	}
	raw, ok, err := c.backend.Get(ctx, c.setKey)
	if err != nil {
		c.hooks.GenerationUnreadable(c.setKey, err)
		c.log.Debug("generation read failed", Fields{"setKey": c.setKey, "err": err})
		return noGeneration
	}
	if !ok {
		return noGeneration
	}
	gen, err := wire.Decode(raw)
	if err != nil {
		c.hooks.GenerationUnreadable(c.setKey, err)
		c.log.Debug("generation decode failed", Fields{"setKey": c.setKey, "err": err})
		return noGeneration
	}
	return gen
}

func (c *cache) deriveKey(ctx context.Context, key string) string {
	return physicalKey(c.resolveGeneration(ctx), c.ns, key)
}

// physicalKey is a pure function of (generation, namespace, logical key):
//
//	<gen>.<ns>.<key>  when gen >= 0
//	.<ns>.<key>       when gen is the sentinel
func physicalKey(gen int32, ns, key string) string {
	if gen > noGeneration {
		return strconv.FormatInt(int64(gen), 10) + "." + ns + "." + key
	}
	return "." + ns + "." + key
}
