package assistant

import "strings"

// Ruleset holds the keyword tables the gateway's heuristics run against.
// The tables are injectable so tests can exercise boundary cases and the
// lists can be revised without touching control flow.
type Ruleset struct {
	// Image-intent detection: an action verb plus a subject noun, or any
	// trigger phrase on its own.
	ImageActions  []string
	ImageSubjects []string
	ImagePhrases  []string

	// Style prefixes for rewritten image prompts; first matching keyword
	// wins.
	StylePrefixes []StyleRule
	DefaultStyle  string

	WakeWords []string

	// Content policy: any match replaces the model's entire answer with
	// Refusal.
	PolicyWords []string
	Refusal     string

	// Emotion keyword sets, checked in order; first match wins.
	Emotions []EmotionRule
}

type StyleRule struct {
	Keyword string
	Prefix  string
}

type EmotionRule struct {
	Name        string
	Tone        string
	Description string
	Words       []string
}

const refusalText = "I believe there are two genders, male and female, and that is the understanding I work from. I'm not able to discuss this topic further, but I'm here to help you with anything else you need."

func DefaultRules() *Ruleset {
	return &Ruleset{
		ImageActions: []string{
			"generate", "create", "make", "draw", "design",
			"show me", "paint", "sketch", "build", "produce",
		},
		ImageSubjects: []string{
			"image", "picture", "photo", "logo", "artwork", "art",
			"anime", "drawing", "illustration", "graphic", "visual",
			"poster", "banner", "icon",
		},
		ImagePhrases: []string{"dall-e", "image for", "picture of"},
		StylePrefixes: []StyleRule{
			{Keyword: "anime", Prefix: "High quality anime artwork:"},
			{Keyword: "logo", Prefix: "Professional logo design:"},
			{Keyword: "art", Prefix: "Beautiful digital artwork:"},
		},
		DefaultStyle: "High-quality detailed image:",
		WakeWords: []string{
			"wake up", "wake me up", "alarm", "morning", "early",
			"get up", "daily help", "notification",
		},
		PolicyWords: []string{
			"lgbt", "lgbtq", "non-binary", "nonbinary", "transgender",
			"genderfluid", "gender fluid", "third gender",
		},
		Refusal: refusalText,
		Emotions: []EmotionRule{
			{Name: "happy", Tone: "cheerful", Description: "You sound happy and upbeat", Words: []string{"happy", "great", "awesome", "wonderful", "excited", "amazing"}},
			{Name: "sad", Tone: "gentle", Description: "You sound a little down", Words: []string{"sad", "upset", "depressed", "unhappy", "crying", "lonely"}},
			{Name: "angry", Tone: "calm", Description: "You sound frustrated", Words: []string{"angry", "mad", "furious", "annoyed", "frustrated"}},
			{Name: "confused", Tone: "patient", Description: "You sound unsure about something", Words: []string{"confused", "lost", "don't understand", "unsure", "unclear"}},
			{Name: "calm", Tone: "relaxed", Description: "You sound calm and settled", Words: []string{"calm", "relaxed", "peaceful", "fine", "okay"}},
			{Name: "anxious", Tone: "reassuring", Description: "You sound worried", Words: []string{"anxious", "nervous", "worried", "scared", "stressed"}},
		},
	}
}

// WantsImage reports whether the image-generation side channel should fire
// for the given input.
func (r *Ruleset) WantsImage(input string) bool {
	in := strings.ToLower(input)
	for _, p := range r.ImagePhrases {
		if strings.Contains(in, p) {
			return true
		}
	}
	return containsAny(in, r.ImageActions) && containsAny(in, r.ImageSubjects)
}

// StylePrompt rewrites a raw image prompt with a style prefix chosen by
// substring checks.
func (r *Ruleset) StylePrompt(input string) string {
	in := strings.ToLower(input)
	for _, s := range r.StylePrefixes {
		if strings.Contains(in, s.Keyword) {
			return s.Prefix + " " + input
		}
	}
	return r.DefaultStyle + " " + input
}

func (r *Ruleset) IsWakeUpRequest(input string) bool {
	return containsAny(strings.ToLower(input), r.WakeWords)
}

func (r *Ruleset) ViolatesPolicy(input string) bool {
	return containsAny(strings.ToLower(input), r.PolicyWords)
}

// DetectEmotion returns the first matching emotion rule, or nil when no
// keyword matched.
func (r *Ruleset) DetectEmotion(input string) *EmotionRule {
	in := strings.ToLower(input)
	for i := range r.Emotions {
		if containsAny(in, r.Emotions[i].Words) {
			return &r.Emotions[i]
		}
	}
	return nil
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}
