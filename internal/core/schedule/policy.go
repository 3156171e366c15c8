package schedule

// Policy carries the plant balancing knobs. Zero values fall back to the
// plant defaults so a snapshot without an explicit policy still runs.
type Policy struct {
	// LinePosts is the post capacity of a full downstream line
	LinePosts int `json:"line_posts" yaml:"line_posts"`

	// HeavyPostThreshold marks a reference heavy when its required posts
	// exceed this value
	HeavyPostThreshold int `json:"heavy_post_threshold" yaml:"heavy_post_threshold"`

	// SplitStreamPosts is the width of each stream when a heavy
	// reference is split across two lines
	SplitStreamPosts int `json:"split_stream_posts" yaml:"split_stream_posts"`

	// OperatorBandMax is the upper edge of the sustainable per-line
	// operator headcount
	OperatorBandMax int `json:"operator_band_max" yaml:"operator_band_max"`

	// MaxDays bounds the planning horizon
	MaxDays int `json:"max_days" yaml:"max_days"`
}

// DefaultPolicy returns the plant defaults: a 28 post line, heavy above
// 11 posts, 14 post split streams, a 12 operator band and a one year
// horizon
func DefaultPolicy() Policy {
	return Policy{
		LinePosts:          28,
		HeavyPostThreshold: 11,
		SplitStreamPosts:   14,
		OperatorBandMax:    12,
		MaxDays:            366,
	}
}

// WithDefaults fills unset fields from DefaultPolicy
func (p Policy) WithDefaults() Policy {
	def := DefaultPolicy()
	if p.LinePosts <= 0 {
		p.LinePosts = def.LinePosts
	}
	if p.HeavyPostThreshold <= 0 {
		p.HeavyPostThreshold = def.HeavyPostThreshold
	}
	if p.SplitStreamPosts <= 0 {
		p.SplitStreamPosts = def.SplitStreamPosts
	}
	if p.OperatorBandMax <= 0 {
		p.OperatorBandMax = def.OperatorBandMax
	}
	if p.MaxDays <= 0 {
		p.MaxDays = def.MaxDays
	}
	return p
}

// Heavy reports whether a reference needing posts posts must be split
func (p Policy) Heavy(posts int) bool { return posts > p.HeavyPostThreshold }
