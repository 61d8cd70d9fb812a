package practice

import "lanspeech/models"

// Feedback here is drawn from fixed pools, not from analysis of the user's
// actual speech. It is the seam where real analysis (pace, filler words)
// would plug in later.

var encouragements = []string{
	"You're doing great! Every word you speak is progress.",
	"I can hear the confidence building in your voice.",
	"That was really well expressed!",
	"You're taking your time, and that's perfect.",
	"I love how thoughtful your responses are.",
}

var suggestions = []string{
	"Try taking a deep breath before speaking",
	"Remember, there's no rush - take your time",
	"Consider pausing between thoughts",
	"Focus on one idea at a time",
}

var strengths = []string{
	"Clear communication",
	"Thoughtful responses",
	"Good engagement",
	"Willingness to practice",
	"Authentic expression",
}

var nextPrompts = []string{
	"What would you like to talk about next?",
	"How are you feeling about this conversation so far?",
	"Is there anything specific you'd like to practice?",
	"What's on your mind today?",
}

// generateFeedback picks one random encouragement and the first two entries of
// the suggestion and strength pools.
func (e *DefaultEngine) generateFeedback() *models.Feedback {
	return &models.Feedback{
		Encouragement: encouragements[e.Rand.Intn(len(encouragements))],
		Suggestions:   suggestions[:2],
		Strengths:     strengths[:2],
	}
}

func (e *DefaultEngine) nextPrompt() string {
	return nextPrompts[e.Rand.Intn(len(nextPrompts))]
}
