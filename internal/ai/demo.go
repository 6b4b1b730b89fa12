package ai

import (
	"context"
	"math/rand/v2"
)

// Provider and model reported for proposals produced without any configured backend
const (
	DemoProvider = "demo"
	DemoModel    = "demo-fallback"
)

var demoResponses = []string{
	"Hi there! I read through your brief and it lines up well with work I have shipped before. " +
		"I would start by clarifying the must-have features, then deliver in small weekly milestones so you can review progress early. " +
		"I keep communication simple and honest, and I flag risks as soon as I see them. " +
		"Which part of the project matters most to you for the first release?",
	"Hello! Your project caught my eye because it mixes clear goals with a few interesting technical questions. " +
		"I have built similar features and know where the tricky parts usually hide. " +
		"My plan would be a short discovery call, a written scope, then steady delivery with demos along the way. " +
		"Do you already have designs, or should we shape the interface together?",
	"Hi! I would be glad to help with this. " +
		"I focus on clean, maintainable work and I am upfront about what I know well and what I will research. " +
		"I can share examples of related projects and walk you through how I would approach yours. " +
		"What does success look like for you a month after launch?",
}

// Demo answers with a canned proposal when no backend is configured
type Demo struct {
	pick func(n int) int
}

// NewDemo returns a Demo choosing responses with pick, or randomly when pick is nil
func NewDemo(pick func(n int) int) *Demo {
	if pick == nil {
		pick = rand.IntN
	}
	return &Demo{pick: pick}
}

func (d *Demo) Name() string     { return DemoProvider }
func (d *Demo) Model() string    { return DemoModel }
func (d *Demo) Configured() bool { return true }

func (d *Demo) Generate(ctx context.Context, prompt string) Result {
	idx := d.pick(len(demoResponses))
	if idx < 0 || idx >= len(demoResponses) {
		idx = 0
	}
	return Result{Success: true, Content: demoResponses[idx], TokensUsed: 0, ModelUsed: DemoModel, Provider: DemoProvider}
}

func (d *Demo) TestConnection(ctx context.Context) error {
	return nil
}
