package autosize

// Handler receives every value the control reports.
type Handler func(value string)

type config struct {
	minSize int
	maxSize int
	columns int
	minRows int
	maxRows int
}

// Option customises an adapter.
type Option func(*config)

// WithMinSize sets the smallest input width in columns.
func WithMinSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.minSize = n
		}
	}
}

// WithMaxSize caps the input width. Zero removes the cap.
func WithMaxSize(n int) Option {
	return func(c *config) {
		if n >= 0 {
			c.maxSize = n
		}
	}
}

// WithColumns sets the textarea width used for soft wrapping.
func WithColumns(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.columns = n
		}
	}
}

// WithMinRows sets the smallest textarea height.
func WithMinRows(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.minRows = n
		}
	}
}

// WithMaxRows caps the textarea height. Zero removes the cap.
func WithMaxRows(n int) Option {
	return func(c *config) {
		if n >= 0 {
			c.maxRows = n
		}
	}
}

func newConfig(options []Option) config {
	cfg := config{
		minSize: DefaultMinSize,
		maxSize: DefaultMaxSize,
		columns: DefaultColumns,
		minRows: DefaultMinRows,
		maxRows: DefaultMaxRows,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return cfg
}

// Input is a single-line control whose width follows its value.
type Input struct {
	cfg      config
	onChange Handler
	value    string
	size     int
}

// NewInput returns an input adapter. onChange may be nil.
func NewInput(onChange Handler, options ...Option) *Input {
	in := &Input{cfg: newConfig(options), onChange: onChange}
	in.size = InputSize("", in.cfg.minSize, in.cfg.maxSize)
	return in
}

// Change forwards value to the handler and then resizes.
func (in *Input) Change(value string) {
	if in.onChange != nil {
		in.onChange(value)
	}
	in.value = value
	in.size = InputSize(value, in.cfg.minSize, in.cfg.maxSize)
}

// Value returns the last value seen.
func (in *Input) Value() string {
	return in.value
}

// Size returns the current width in columns.
func (in *Input) Size() int {
	return in.size
}

// TextArea is a multi-line control whose height follows its value.
type TextArea struct {
	cfg      config
	onChange Handler
	value    string
	rows     int
}

// NewTextArea returns a textarea adapter. onChange may be nil.
func NewTextArea(onChange Handler, options ...Option) *TextArea {
	ta := &TextArea{cfg: newConfig(options), onChange: onChange}
	ta.rows = TextAreaRows("", ta.cfg.columns, ta.cfg.minRows, ta.cfg.maxRows)
	return ta
}

// Change forwards value to the handler and then resizes.
func (ta *TextArea) Change(value string) {
	if ta.onChange != nil {
		ta.onChange(value)
	}
	ta.value = value
	ta.rows = TextAreaRows(value, ta.cfg.columns, ta.cfg.minRows, ta.cfg.maxRows)
}

func (ta *TextArea) Value() string {
	return ta.value
}

// Rows returns the current height in lines.
func (ta *TextArea) Rows() int {
	return ta.rows
}

// Columns returns the wrap width.
func (ta *TextArea) Columns() int {
	return ta.cfg.columns
}
