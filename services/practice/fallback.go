package practice

import "lanspeech/models"

// fallbackWelcome opens a session when no generation provider is available.
const fallbackWelcome = "Welcome to LanSpeech practice! While our AI is taking a break, I can still help you practice. Try speaking about your day, your goals, or anything that interests you. Remember, every word you speak is progress!"

// fallbackContinuations are the canned replies for continued conversation on
// the no-provider path, chosen uniformly at random.
var fallbackContinuations = []string{
	"That's really interesting! Can you tell me more about that?",
	"I can hear the thought you put into that response. What else would you like to share?",
	"You're doing great! How does it feel to express those thoughts out loud?",
	"That's a wonderful perspective. What made you think about that?",
	"I appreciate you sharing that with me. What would you like to talk about next?",
}

func (e *DefaultEngine) fallbackResponse(isInitial bool) *models.AIResponse {
	if isInitial {
		return &models.AIResponse{
			Message: fallbackWelcome,
			Feedback: &models.Feedback{
				Encouragement: "You're taking the first step by starting a practice session!",
				Suggestions:   []string{"Speak about something you're passionate about", "Practice introducing yourself", "Try describing your favorite hobby"},
				Strengths:     []string{"You're committed to improving", "You're being proactive about practice"},
			},
		}
	}

	return &models.AIResponse{
		Message: fallbackContinuations[e.Rand.Intn(len(fallbackContinuations))],
		Feedback: &models.Feedback{
			Encouragement: "You're doing wonderfully! Keep expressing yourself.",
			Suggestions:   []string{"Continue sharing your thoughts", "Take your time with each word", "Focus on what you want to say"},
			Strengths:     []string{"Clear communication", "Thoughtful responses", "Consistent practice"},
		},
	}
}
