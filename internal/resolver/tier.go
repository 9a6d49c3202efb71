package resolver

import (
	"fmt"
	"strings"
	"time"

	"github.com/pavelc4/aether-resolver/internal/extractor"
)

type Tier string

const (
	TierBest  Tier = "best"
	TierWorst Tier = "worst"
	Tier1080p Tier = "1080p"
	Tier720p  Tier = "720p"
	Tier360p  Tier = "360p"
)

// Policy is a structured format preference: best or worst available,
// optionally capped in height, preferring a merged VideoExt+AudioExt pair,
// then a single VideoExt file, then anything.
type Policy struct {
	Worst     bool
	MaxHeight int
	VideoExt  string
	AudioExt  string
}

var tierPolicies = map[Tier]Policy{
	TierBest:  {VideoExt: "mp4", AudioExt: "m4a"},
	TierWorst: {Worst: true, VideoExt: "mp4", AudioExt: "m4a"},
	Tier1080p: {MaxHeight: 1080, VideoExt: "mp4", AudioExt: "m4a"},
	Tier720p:  {MaxHeight: 720, VideoExt: "mp4", AudioExt: "m4a"},
	Tier360p:  {MaxHeight: 360, VideoExt: "mp4", AudioExt: "m4a"},
}

// Tiers lists the accepted tiers in display order.
func Tiers() []Tier {
	return []Tier{TierBest, TierWorst, Tier360p, Tier720p, Tier1080p}
}

// ParseTier accepts a tier name case-insensitively. Empty or unknown names
// yield TierBest and false.
func ParseTier(s string) (Tier, bool) {
	t := Tier(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := tierPolicies[t]; ok {
		return t, true
	}
	return TierBest, false
}

func (t Tier) Policy() Policy {
	if p, ok := tierPolicies[t]; ok {
		return p
	}
	return tierPolicies[TierBest]
}

// ValidateTiers checks every entry of the tier table.
func ValidateTiers() error {
	for _, t := range Tiers() {
		if err := t.Policy().Validate(); err != nil {
			return fmt.Errorf("tier %s: %w", t, err)
		}
	}
	return nil
}

func (p Policy) Validate() error {
	if p.MaxHeight < 0 {
		return fmt.Errorf("max height must not be negative, got %d", p.MaxHeight)
	}
	if p.VideoExt == "" || p.AudioExt == "" {
		return fmt.Errorf("policy needs both a video and an audio container")
	}
	return nil
}

// Expression renders the policy in yt-dlp format selector syntax.
func (p Policy) Expression() string {
	pick := "best"
	if p.Worst {
		pick = "worst"
	}
	limit := ""
	if p.MaxHeight > 0 {
		limit = fmt.Sprintf("[height<=%d]", p.MaxHeight)
	}

	merged := fmt.Sprintf("%svideo%s[ext=%s]+%saudio[ext=%s]", pick, limit, p.VideoExt, pick, p.AudioExt)
	single := fmt.Sprintf("%s%s[ext=%s]", pick, limit, p.VideoExt)
	return merged + "/" + single + "/" + pick
}

func providerOptions(t Tier, infoOnly bool, socketTimeout time.Duration) extractor.Options {
	return extractor.Options{
		Format:            t.Policy().Expression(),
		MergeOutputFormat: "mp4",
		InfoOnly:          infoOnly,
		NoPlaylist:        true,
		GeoBypass:         true,
		SocketTimeout:     socketTimeout,
	}
}
