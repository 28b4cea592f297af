package cache

import "context"

// Tiered composes a fast local tier with an optional secondary tier. Local
// hits win; secondary hits are backfilled into the local tier. Writes go to
// both. A nil secondary yields local-only behavior, which is also what the
// caller effectively gets whenever the secondary tier is down.
type Tiered struct {
	local     Cache
	secondary Cache
}

func NewTiered(local, secondary Cache) *Tiered {
	return &Tiered{local: local, secondary: secondary}
}

func (c *Tiered) Get(ctx context.Context, key string) ([]byte, bool) {
	if v, ok := c.local.Get(ctx, key); ok {
		return v, true
	}
	if c.secondary == nil {
		return nil, false
	}
	v, ok := c.secondary.Get(ctx, key)
	if !ok {
		return nil, false
	}
	c.local.Set(ctx, key, v)
	return v, true
}

func (c *Tiered) Set(ctx context.Context, key string, value []byte) {
	c.local.Set(ctx, key, value)
	if c.secondary != nil {
		c.secondary.Set(ctx, key, value)
	}
}

func (c *Tiered) Close() error {
	if c.secondary != nil {
		return c.secondary.Close()
	}
	return nil
}
