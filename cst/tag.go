package cst

// Tag identifies a node's syntactic kind. The set mirrors the grammar's
// named productions plus TagToken for leaf tokens.
type Tag int

const (
	TagRoot Tag = iota // whole-file structure
	TagFileHeader
	TagTune
	TagTuneHeader
	TagTuneBody
	TagSystem    // one rendered line's worth of tune-body content
	TagMusicCode // music content of one line
	TagNote
	TagPitch
	TagChord
	TagRest
	TagMultiMeasureRest
	TagBeam
	TagTuplet
	TagGraceGroup
	TagBarLine
	TagRhythm
	TagInfoLine
	TagInlineField
	TagAnnotation
	TagChordSymbol
	TagComment
	TagDecoration
	TagSymbol
	TagYSpacer
	TagSymbolLine
	TagLyricLine
	TagLyricSection
	TagDirective
	TagVoiceOverlay
	TagMacro
	TagUserSymbol
	TagFreeText
	TagError
	TagToken
)

var tagNames = map[Tag]string{
	TagRoot:             "Root",
	TagFileHeader:       "File_header",
	TagTune:             "Tune",
	TagTuneHeader:       "Tune_header",
	TagTuneBody:         "Tune_body",
	TagSystem:           "System",
	TagMusicCode:        "Music_code",
	TagNote:             "Note",
	TagPitch:            "Pitch",
	TagChord:            "Chord",
	TagRest:             "Rest",
	TagMultiMeasureRest: "MultiMeasureRest",
	TagBeam:             "Beam",
	TagTuplet:           "Tuplet",
	TagGraceGroup:       "Grace_group",
	TagBarLine:          "BarLine",
	TagRhythm:           "Rhythm",
	TagInfoLine:         "Info_line",
	TagInlineField:      "Inline_field",
	TagAnnotation:       "Annotation",
	TagChordSymbol:      "Chord_symbol",
	TagComment:          "Comment",
	TagDecoration:       "Decoration",
	TagSymbol:           "Symbol",
	TagYSpacer:          "Y_spacer",
	TagSymbolLine:       "Symbol_line",
	TagLyricLine:        "Lyric_line",
	TagLyricSection:     "Lyric_section",
	TagDirective:        "Directive",
	TagVoiceOverlay:     "Voice_overlay",
	TagMacro:            "Macro",
	TagUserSymbol:       "User_symbol",
	TagFreeText:         "Free_text",
	TagError:            "Error",
	TagToken:            "Token",
}

func (t Tag) String() string {
	if name, ok := tagNames[t]; ok {
		return name
	}
	return "Unknown"
}

// IsMusicElement reports whether the tag is a musical content element, as
// opposed to a structural wrapper, field, or lexical token.
func (t Tag) IsMusicElement() bool {
	switch t {
	case TagNote, TagChord, TagRest, TagMultiMeasureRest, TagBeam,
		TagTuplet, TagGraceGroup:
		return true
	}
	return false
}

// IsRhythmParent reports whether the tag may carry a Rhythm child.
func (t Tag) IsRhythmParent() bool {
	switch t {
	case TagNote, TagChord, TagRest, TagYSpacer:
		return true
	}
	return false
}
