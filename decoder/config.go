/*
DESCRIPTION
  config.go declares Config, the flat struct of decoder-wide options a
  caller sets once at start-of-stream.

AUTHORS
  h264dec contributors, grounded on the teacher's revid/config.Config
  flat-struct-of-options style.
*/

package decoder

// Config carries the handful of options that govern a Decoder's behaviour
// across its lifetime, mirroring the teacher's revid configuration style:
// one flat struct of fields rather than a builder or functional options,
// set once by the caller before the first Decode call.
type Config struct {
	// Debug turns on verbose per-NAL/per-macroblock logging via the
	// package-level logger (internal/log). Left off by default: each SPS
	// and PPS NAL unit produces one Info-level log line regardless, Debug
	// adds per-NAL and per-macroblock detail on top of that.
	Debug bool

	// Seek, End, and Step bound and stride the decoded output the way the
	// teacher's revid config does for its own frame range: Seek is the
	// first output picture index to keep (in decoding order, post-DPB
	// reorder is the caller's concern, not this decoder's), End is the
	// last index to keep (0 means "to the end of stream"), and Step keeps
	// every Step'th picture starting at Seek (0 or 1 both mean "every
	// picture").
	Seek int
	End  int
	Step int
}

// keepPicture reports whether the picture at output index idx (0-based,
// decoding order) should be kept per Seek/End/Step.
func (c Config) keepPicture(idx int) bool {
	if idx < c.Seek {
		return false
	}
	if c.End > 0 && idx > c.End {
		return false
	}
	step := c.Step
	if step < 1 {
		step = 1
	}
	return (idx-c.Seek)%step == 0
}
