package carousel

// Controller owns the selection and auto-play state of one carousel instance.
// It is not safe for concurrent use: every method and every scheduler callback
// must run on the same logical thread (see Session).
type Controller struct {
	categories []Category
	settings   Settings
	sched      Scheduler

	selectedID  string
	autoPlaying bool
	closed      bool

	stopTicker func()
	resumes    map[int]func()
	resumeSeq  int

	onState  func(State)
	onScroll func(ScrollRequest)
}

// Option customises a Controller.
type Option func(*Controller)

// OnState registers a listener invoked after every state change.
func OnState(fn func(State)) Option {
	return func(c *Controller) { c.onState = fn }
}

// OnScroll registers a listener for centering requests.
func OnScroll(fn func(ScrollRequest)) Option {
	return func(c *Controller) { c.onScroll = fn }
}

// StartAt selects the category at index instead of the first one. Invalid
// indexes are ignored.
func StartAt(index int) Option {
	return func(c *Controller) {
		if index >= 0 && index < len(c.categories) {
			c.selectedID = c.categories[index].ID
		}
	}
}

// Paused starts the controller with auto-play off.
func Paused() Option {
	return func(c *Controller) { c.autoPlaying = false }
}

// New builds a controller over an immutable category sequence. The first
// category is selected and auto-play is on.
func New(categories []Category, settings Settings, sched Scheduler, opts ...Option) *Controller {
	c := &Controller{
		categories:  append([]Category(nil), categories...),
		settings:    settings.withDefaults(),
		sched:       sched,
		autoPlaying: true,
		resumes:     map[int]func(){},
	}
	if len(c.categories) > 0 {
		c.selectedID = c.categories[0].ID
	}
	for _, opt := range opts {
		opt(c)
	}
	c.syncTicker()
	return c
}

// Categories returns the sequence the controller cycles through.
func (c *Controller) Categories() []Category {
	return append([]Category(nil), c.categories...)
}

// Settings returns the effective settings after defaults were applied.
func (c *Controller) Settings() Settings { return c.settings }

// State reports the current selection and auto-play flag.
func (c *Controller) State() State {
	return State{
		SelectedID:  c.selectedID,
		AutoPlaying: c.autoPlaying,
		Index:       c.indexOf(c.selectedID),
	}
}

// SelectNext moves to the next category, wrapping from last to first.
func (c *Controller) SelectNext() { c.step(1) }

// SelectPrevious moves to the previous category, wrapping from first to last.
func (c *Controller) SelectPrevious() { c.step(-1) }

// SelectByIndex selects the category at i as an explicit visitor choice.
func (c *Controller) SelectByIndex(i int) {
	if c.closed || i < 0 || i >= len(c.categories) {
		return
	}
	c.manualSelect(i)
}

// PointerEnter pauses auto-play while the pointer is over the viewport.
func (c *Controller) PointerEnter() {
	if c.closed || !c.autoPlaying {
		return
	}
	c.autoPlaying = false
	c.changed()
}

// PointerLeave resumes auto-play immediately. Pending click resumes stay armed.
func (c *Controller) PointerLeave() {
	c.resume()
}

// SetViewportWidth updates the visible width used for centering.
func (c *Controller) SetViewportWidth(w float64) {
	if w > 0 {
		c.settings.Layout.ViewportWidth = w
	}
}

// Close cancels the auto-advance timer and every pending resume. The
// controller ignores all calls afterwards.
func (c *Controller) Close() {
	if c.closed {
		return
	}
	c.closed = true
	if c.stopTicker != nil {
		c.stopTicker()
		c.stopTicker = nil
	}
	for id, cancel := range c.resumes {
		cancel()
		delete(c.resumes, id)
	}
}

func (c *Controller) step(delta int) {
	n := len(c.categories)
	if c.closed || n == 0 {
		return
	}
	i := c.indexOf(c.selectedID)
	if i < 0 {
		i = 0
	}
	c.manualSelect(((i+delta)%n + n) % n)
}

func (c *Controller) manualSelect(i int) {
	c.selectedID = c.categories[i].ID
	c.requestScroll(i)
	c.autoPlaying = false
	c.scheduleResume()
	c.changed()
}

// tick is the auto-advance callback: it behaves like SelectNext without
// suspending auto-play.
func (c *Controller) tick() {
	n := len(c.categories)
	if c.closed || !c.autoPlaying || n == 0 {
		return
	}
	i := c.indexOf(c.selectedID)
	next := (i + 1) % n
	if i < 0 {
		next = 0
	}
	c.selectedID = c.categories[next].ID
	c.requestScroll(next)
	c.changed()
}

// scheduleResume arms a one-shot resume. Resumes are independent of each
// other and of PointerLeave; only Close cancels them.
func (c *Controller) scheduleResume() {
	c.resumeSeq++
	id := c.resumeSeq
	c.resumes[id] = c.sched.After(c.settings.ResumeDelay, func() {
		delete(c.resumes, id)
		c.resume()
	})
}

func (c *Controller) resume() {
	if c.closed || c.autoPlaying {
		return
	}
	c.autoPlaying = true
	c.changed()
}

// changed re-arms the periodic timer for the new selection and notifies.
func (c *Controller) changed() {
	c.syncTicker()
	if c.onState != nil {
		c.onState(c.State())
	}
}

func (c *Controller) syncTicker() {
	if c.stopTicker != nil {
		c.stopTicker()
		c.stopTicker = nil
	}
	if c.closed || !c.autoPlaying || len(c.categories) == 0 {
		return
	}
	c.stopTicker = c.sched.Every(c.settings.Interval, c.tick)
}

func (c *Controller) requestScroll(i int) {
	if c.onScroll == nil {
		return
	}
	c.onScroll(ScrollRequest{Index: i, Offset: CenterOffset(i, c.settings.Layout)})
}

func (c *Controller) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, cat := range c.categories {
		if cat.ID == id {
			return i
		}
	}
	return -1
}
