package assistant

// Mode selects which branch of message construction runs for a request.
type Mode string

const (
	ModeText               Mode = "text"
	ModeImage              Mode = "image"
	ModeDocument           Mode = "document"
	ModeVoice              Mode = "voice"
	ModeVideo              Mode = "video"
	ModeSongGeneration     Mode = "song_generation"
	ModeSongIdentification Mode = "song_identification"
	ModeAlarm              Mode = "alarm"
	ModeTTS                Mode = "tts"
	ModeImageGeneration    Mode = "image_generation"
)

// ParseMode maps the wire value to a Mode. Unrecognized values get plain
// text handling.
func ParseMode(s string) Mode {
	switch Mode(s) {
	case ModeImage, ModeDocument, ModeVoice, ModeVideo,
		ModeSongGeneration, ModeSongIdentification,
		ModeAlarm, ModeTTS, ModeImageGeneration:
		return Mode(s)
	default:
		return ModeText
	}
}
