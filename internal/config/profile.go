package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// CarouselProfile configures a rotating slide widget.
type CarouselProfile struct {
	Slides     []string `yaml:"slides"`
	IntervalMS int      `yaml:"interval_ms"`
}

// CounterProfile configures a one-shot animated stat counter.
type CounterProfile struct {
	Label  string `yaml:"label"`
	Target int64  `yaml:"target"`
}

// ChatProfile configures the scripted chat widget.
type ChatProfile struct {
	Greeting     string   `yaml:"greeting"`
	BotReplies   []string `yaml:"bot_replies"`
	ReplyDelayMS int      `yaml:"reply_delay_ms"`
}

// FormProfile configures the simulated submission timing shared by all forms.
type FormProfile struct {
	SubmitDelayMS int `yaml:"submit_delay_ms"`
	ResetDelayMS  int `yaml:"reset_delay_ms"`
}

// PageProfile describes the behavioral configuration of one landing page:
// experiment weighting, milestone thresholds, widget content, and form timing.
type PageProfile struct {
	VariantBWeight   float64          `yaml:"variant_b_weight"`
	ScrollMilestones []int            `yaml:"scroll_milestones"`
	TimeMilestones   []int            `yaml:"time_milestones"`
	CountdownTarget  time.Time        `yaml:"countdown_target"`
	Carousel         CarouselProfile  `yaml:"carousel"`
	Counters         []CounterProfile `yaml:"counters"`
	Chat             ChatProfile      `yaml:"chat"`
	Form             FormProfile      `yaml:"form"`
}

// DefaultProfile returns the profile used when no page.yaml is present. The
// milestone sets match the thresholds the page scripts report against.
func DefaultProfile() *PageProfile {
	return &PageProfile{
		VariantBWeight:   0.5,
		ScrollMilestones: []int{25, 50, 75, 100},
		TimeMilestones:   []int{30, 60, 120},
		Carousel: CarouselProfile{
			IntervalMS: 5000,
		},
		Chat: ChatProfile{
			Greeting:     "Hi there! How can we help?",
			ReplyDelayMS: 1200,
		},
		Form: FormProfile{
			SubmitDelayMS: 1500,
			ResetDelayMS:  3000,
		},
	}
}

// LoadProfile reads and parses a page profile, filling unset fields from the
// defaults. A missing file is not an error; the defaults are returned as-is.
func LoadProfile(path string) (*PageProfile, error) {
	p := DefaultProfile()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return p, nil
		}
		return nil, fmt.Errorf("reading page profile %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parsing page profile: %w", err)
	}

	if p.VariantBWeight < 0 || p.VariantBWeight > 1 {
		return nil, fmt.Errorf("variant_b_weight must be within [0, 1], got %v", p.VariantBWeight)
	}
	if p.Carousel.IntervalMS <= 0 {
		p.Carousel.IntervalMS = 5000
	}
	if p.Chat.ReplyDelayMS <= 0 {
		p.Chat.ReplyDelayMS = 1200
	}
	if p.Form.SubmitDelayMS <= 0 {
		p.Form.SubmitDelayMS = 1500
	}
	if p.Form.ResetDelayMS <= 0 {
		p.Form.ResetDelayMS = 3000
	}

	return p, nil
}
