package sectionobserver

import "sync"

// Options are a consumer's preferences. Zero fields fall back to the
// configuration already shared by other consumers.
type Options struct {
	IDs []SectionID
	// Offset in pixels; nil keeps the shared offset. Zero is a valid
	// offset for pages without a fixed header.
	Offset         *float64
	HeaderSelector string
	// Enabled gates observation; nil means always enabled.
	Enabled EnabledSource
}

// Consumer is one UI component's handle on the shared Store. It holds at
// most one activation at a time no matter how often its inputs change.
type Consumer struct {
	store *Store

	mu      sync.Mutex
	opts    Options
	mounted bool
	enabled bool
	applied Config
	unwatch func()
}

// Pixels returns a pointer to px for Options.Offset.
func Pixels(px float64) *float64 { return &px }

// Use returns a consumer for opts. Nothing happens until Mount.
func (s *Store) Use(opts Options) *Consumer {
	return &Consumer{store: s, opts: opts}
}

// Mount starts reconciling the consumer against the store and watches a
// reactive Enabled source for changes.
func (c *Consumer) Mount() {
	c.mu.Lock()
	if c.mounted {
		c.mu.Unlock()
		return
	}
	c.mounted = true
	c.watchLocked()
	c.mu.Unlock()

	c.Reconcile()
}

// Update replaces the consumer's options and reconciles.
func (c *Consumer) Update(opts Options) {
	c.mu.Lock()
	c.opts = opts
	if c.mounted {
		c.watchLocked()
	}
	c.mu.Unlock()

	c.Reconcile()
}

// Reconcile evaluates the enabled source and the options and moves the
// consumer into the matching state: activating, reconfiguring or
// releasing its hold on the store.
func (c *Consumer) Reconcile() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.mounted || c.store.doc == nil {
		return
	}

	want := resolveEnabled(c.opts.Enabled)
	switch {
	case want && !c.enabled:
		cfg := c.store.resolve(c.opts)
		c.enabled = true
		c.applied = cfg
		c.store.activate(cfg)
	case want && c.enabled:
		cfg := c.store.resolve(c.opts)
		if !cfg.equal(c.applied) {
			c.applied = cfg
			c.store.reconfigure(cfg)
		}
	case !want && c.enabled:
		c.enabled = false
		c.store.deactivate()
	}
}

// Unmount releases the consumer's activation, if any, and stops watching.
func (c *Consumer) Unmount() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.mounted {
		return
	}
	c.mounted = false
	if c.unwatch != nil {
		c.unwatch()
		c.unwatch = nil
	}
	if c.enabled {
		c.enabled = false
		c.store.deactivate()
	}
}

// ActiveSection returns the shared active section.
func (c *Consumer) ActiveSection() SectionID { return c.store.Active() }

// ScrollToSection scrolls the page to id; see Store.ScrollToSection.
func (c *Consumer) ScrollToSection(id SectionID, behavior Behavior) {
	c.store.ScrollToSection(id, behavior)
}

// SetActiveSection overrides the shared active section.
func (c *Consumer) SetActiveSection(id SectionID) { c.store.SetActiveSection(id) }

func (c *Consumer) watchLocked() {
	if c.unwatch != nil {
		c.unwatch()
		c.unwatch = nil
	}
	if f, ok := c.opts.Enabled.(*Flag); ok && f != nil {
		c.unwatch = f.Watch(c.Reconcile)
	}
}
